// Package notifyadapters contém as implementações da porta notify.Notifier:
// log estruturado (dev, equivale ao console do serviço original) e RabbitMQ.
package notifyadapters

import (
	"context"

	"adota-pet/internal/platform/logger"
	"adota-pet/internal/ports/notify"
)

type LogNotifier struct {
	log logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, evt notify.Event) error {
	n.log.Info("notificação", map[string]any{
		"evento":       evt.Tipo,
		"solicitacao":  evt.SolicitacaoID,
		"tipo_pedido":  evt.TipoPedido,
		"animal":       evt.AnimalID,
		"destinatario": evt.Destinatario,
		"mensagem":     evt.Mensagem,
	})
	return nil
}
