// Package notify define o canal lateral de notificações do ciclo de vida
// das solicitações. O contrato é best-effort: quem chama tenta uma vez e
// falha de publicação nunca derruba a transição que a disparou.
package notify

import "context"

// Tipos de evento emitidos pelo lifecycle de solicitações.
const (
	EventSolicitacaoCriada    = "solicitacao.criada"
	EventSolicitacaoAprovada  = "solicitacao.aprovada"
	EventSolicitacaoRejeitada = "solicitacao.rejeitada"
	EventSolicitacaoCancelada = "solicitacao.cancelada"
)

// Event carrega o mínimo para montar a mensagem ao destinatário.
type Event struct {
	Tipo          string `json:"tipo"`
	SolicitacaoID string `json:"solicitacao_id"`
	TipoPedido    string `json:"tipo_pedido"` // ADOCAO ou APADRINHAMENTO
	AnimalID      string `json:"animal_id"`
	AnimalNome    string `json:"animal_nome"`
	Destinatario  string `json:"destinatario"` // user ID de quem recebe
	Mensagem      string `json:"mensagem"`
}

// Notifier publica um evento. Implementações: log (dev) e RabbitMQ (prod).
type Notifier interface {
	Notify(ctx context.Context, evt Event) error
}
