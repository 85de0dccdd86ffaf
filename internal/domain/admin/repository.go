package admin

import "context"

// Repository cobre as projeções agregadas. Só leitura, nenhuma regra.
type Repository interface {
	DashboardStats(ctx context.Context) (DashboardStats, error)
	ListUsers(ctx context.Context) ([]UserListItem, error)
	ListAnimals(ctx context.Context) ([]AnimalListItem, error)
	ListSolicitacoes(ctx context.Context) ([]SolicitacaoListItem, error)
}
