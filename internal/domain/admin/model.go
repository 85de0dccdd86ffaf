// Package admin expõe as consultas agregadas somente-leitura do dashboard.
// Cada contagem é uma query independente: o dashboard aceita leves
// divergências entre elas, não há garantia de consistência cruzada.
package admin

import "time"

type DashboardStats struct {
	TotalUsuarios         int `json:"totalUsuarios"`
	TotalAnimais          int `json:"totalAnimais"`
	TotalSolicitacoes     int `json:"totalSolicitacoes"`
	SolicitacoesPendentes int `json:"solicitacoesPendentes"`
	AnimaisDisponiveis    int `json:"animaisDisponiveis"`
	AnimaisAdotados       int `json:"animaisAdotados"`
}

// UserListItem é a projeção de usuário com contadores para a listagem.
type UserListItem struct {
	ID                string    `json:"id"`
	Nome              string    `json:"nome"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	TotalAnimais      int       `json:"totalAnimais"`
	TotalSolicitacoes int       `json:"totalSolicitacoes"`
	CreatedAt         time.Time `json:"createdAt"`
}

// AnimalListItem junta animal, protetor e contagem de solicitações.
type AnimalListItem struct {
	ID                string    `json:"id"`
	Nome              string    `json:"nome"`
	Especie           string    `json:"especie"`
	Status            string    `json:"status"`
	ProtetorID        string    `json:"protetorId"`
	ProtetorNome      string    `json:"protetorNome"`
	TotalSolicitacoes int       `json:"totalSolicitacoes"`
	Fotos             []string  `json:"fotos"`
	CreatedAt         time.Time `json:"createdAt"`
}

// SolicitacaoListItem é a visão denormalizada para o admin.
type SolicitacaoListItem struct {
	ID              string    `json:"id"`
	Tipo            string    `json:"tipo"`
	Status          string    `json:"status"`
	Mensagem        string    `json:"mensagem,omitempty"`
	AnimalID        string    `json:"animalId"`
	AnimalNome      string    `json:"animalNome"`
	ProtetorNome    string    `json:"protetorNome"`
	InteressadoID   string    `json:"interessadoId"`
	InteressadoNome string    `json:"interessadoNome"`
	CreatedAt       time.Time `json:"createdAt"`
}
