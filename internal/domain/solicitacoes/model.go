package solicitacoes

import "time"

// Solicitacao liga um interessado a um animal com um tipo e um status.
// Nunca é deletada: termina em APROVADA, REJEITADA ou CANCELADA.
type Solicitacao struct {
	ID string

	Tipo     Tipo
	Status   Status
	Mensagem string // texto livre opcional do interessado

	AnimalID      string
	InteressadoID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
