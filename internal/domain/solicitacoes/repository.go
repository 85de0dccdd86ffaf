package solicitacoes

import "context"

type Repository interface {
	Create(ctx context.Context, s Solicitacao) error
	GetByID(ctx context.Context, id string) (Solicitacao, error)
	Update(ctx context.Context, s Solicitacao) error

	ListByInteressado(ctx context.Context, interessadoID string) ([]Solicitacao, error)
	// ListByProtetor devolve as solicitações contra animais do protetor.
	ListByProtetor(ctx context.Context, protetorID string) ([]Solicitacao, error)
	ListAll(ctx context.Context) ([]Solicitacao, error)

	// ExistsPendente informa se já há solicitação PENDENTE do par
	// (animal, interessado). Checagem read-then-insert; ver nota no schema.
	ExistsPendente(ctx context.Context, animalID, interessadoID string) (bool, error)
}
