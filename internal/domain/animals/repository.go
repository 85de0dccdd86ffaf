package animals

import "context"

type Repository interface {
	// Create persiste o animal junto com as fotos na mesma operação lógica:
	// ou entra tudo, ou nada (no Postgres, uma transação).
	Create(ctx context.Context, a Animal) error

	GetByID(ctx context.Context, id string) (Animal, error)
	ListByStatus(ctx context.Context, status Status) ([]Animal, error)
	Update(ctx context.Context, a Animal) error
	Delete(ctx context.Context, id string) error
	AddFotos(ctx context.Context, animalID string, fotos []Foto) error
}
