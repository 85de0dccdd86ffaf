package animals

import "time"

// Foto pertence a exatamente um Animal e cai junto com ele no delete.
type Foto struct {
	ID       string
	URL      string
	Legenda  string
	AnimalID string
}

// Animal é o registro publicado por um protetor.
type Animal struct {
	ID         string
	ProtetorID string

	Nome      string
	Especie   Especie
	Raca      string // opcional
	Idade     int    // anos, 0..30
	Porte     Porte
	Descricao string
	Status    Status

	Fotos []Foto

	CreatedAt time.Time
	UpdatedAt time.Time
}
