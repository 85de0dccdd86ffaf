package solicitacoes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"adota-pet/internal/domain/animals"
	"adota-pet/internal/domain/authz"
	"adota-pet/internal/platform/logger"
	"adota-pet/internal/platform/sanitize"
	"adota-pet/internal/ports/notify"
)

var (
	ErrInvalidInput  = errors.New("dados inválidos")
	ErrNotFound      = errors.New("solicitação não encontrada")
	ErrNaoAutorizado = errors.New("sem permissão sobre esta solicitação")

	ErrAnimalIndisponivel   = errors.New("animal não está disponível para adoção/apadrinhamento")
	ErrAnimalProprio        = errors.New("você não pode solicitar seu próprio animal")
	ErrSolicitacaoDuplicada = errors.New("você já possui uma solicitação pendente para este animal")
	ErrStatusInvalido       = errors.New("apenas solicitações pendentes podem ser alteradas")
	ErrTipoInvalido         = errors.New("operação válida apenas para solicitações de apadrinhamento")
)

// MetricsRecorder registra o resultado das notificações best-effort.
type MetricsRecorder interface {
	RecordNotifySuccess()
	RecordNotifyFailure()
}

type Service struct {
	repo     Repository
	animais  *animals.Service
	notifier notify.Notifier
	metrics  MetricsRecorder
	log      logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, animais *animals.Service, notifier notify.Notifier, metrics MetricsRecorder, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		animais:  animais,
		notifier: notifier,
		metrics:  metrics,
		log:      log,
		now:      time.Now,
	}
}

type CriarInput struct {
	Tipo     Tipo
	AnimalID string
	Mensagem string
}

// Criar abre uma solicitação PENDENTE. Pré-condições, nesta ordem:
// animal existe, está DISPONIVEL, não é do próprio solicitante e não há
// outra solicitação PENDENTE do mesmo par (animal, interessado).
func (s *Service) Criar(ctx context.Context, actor authz.ActingUser, in CriarInput) (Solicitacao, error) {
	if !ValidTipo(in.Tipo) || strings.TrimSpace(in.AnimalID) == "" {
		return Solicitacao{}, ErrInvalidInput
	}

	animal, err := s.animais.GetByID(ctx, in.AnimalID)
	if err != nil {
		// propaga animals.ErrNotFound para o handler mapear como 404
		return Solicitacao{}, err
	}
	if animal.Status != animals.StatusDisponivel {
		return Solicitacao{}, ErrAnimalIndisponivel
	}
	if animal.ProtetorID == actor.ID {
		return Solicitacao{}, ErrAnimalProprio
	}

	// Read-then-insert: a corrida de submissões simultâneas fica para o
	// índice único parcial do Postgres (ver migrations).
	pendente, err := s.repo.ExistsPendente(ctx, in.AnimalID, actor.ID)
	if err != nil {
		return Solicitacao{}, err
	}
	if pendente {
		return Solicitacao{}, ErrSolicitacaoDuplicada
	}

	now := s.now()
	sol := Solicitacao{
		ID:            uuid.NewString(),
		Tipo:          in.Tipo,
		Status:        StatusPendente,
		Mensagem:      sanitize.Text(in.Mensagem),
		AnimalID:      in.AnimalID,
		InteressadoID: actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, sol); err != nil {
		return Solicitacao{}, err
	}

	// Notificação ao protetor: best-effort, nunca desfaz a criação.
	s.emit(ctx, notify.Event{
		Tipo:          notify.EventSolicitacaoCriada,
		SolicitacaoID: sol.ID,
		TipoPedido:    string(sol.Tipo),
		AnimalID:      animal.ID,
		AnimalNome:    animal.Nome,
		Destinatario:  animal.ProtetorID,
		Mensagem:      "nova solicitação recebida para o seu animal",
	})

	return sol, nil
}

func (s *Service) MinhasSolicitacoes(ctx context.Context, interessadoID string) ([]Solicitacao, error) {
	return s.repo.ListByInteressado(ctx, interessadoID)
}

func (s *Service) Recebidas(ctx context.Context, protetorID string) ([]Solicitacao, error) {
	return s.repo.ListByProtetor(ctx, protetorID)
}

func (s *Service) ListarTodas(ctx context.Context) ([]Solicitacao, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (Solicitacao, error) {
	return s.repo.GetByID(ctx, id)
}

// AtualizarStatus é a via administrativa: sobrescreve o status sem checar o
// estado atual nem o tipo (escape hatch de admin, mantido como no original).
// Só esta via muda a disponibilidade do animal, e só quando vira APROVADA:
// ADOCAO => ADOTADO, APADRINHAMENTO => APADRINHADO.
func (s *Service) AtualizarStatus(ctx context.Context, id string, novo Status) (Solicitacao, error) {
	if !ValidStatus(novo) {
		return Solicitacao{}, ErrInvalidInput
	}

	sol, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Solicitacao{}, err
	}

	sol.Status = novo
	sol.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, sol); err != nil {
		return Solicitacao{}, err
	}

	if novo == StatusAprovada {
		animalStatus := animals.StatusApadrinhado
		if sol.Tipo == TipoAdocao {
			animalStatus = animals.StatusAdotado
		}
		if err := s.animais.SetStatus(ctx, sol.AnimalID, animalStatus); err != nil {
			return Solicitacao{}, err
		}
		s.notifyInteressado(ctx, sol, notify.EventSolicitacaoAprovada, "sua solicitação foi aprovada")
	}

	return sol, nil
}

// Cancelar é exclusivo do interessado dono da solicitação, só em PENDENTE.
func (s *Service) Cancelar(ctx context.Context, id string, actor authz.ActingUser) (Solicitacao, error) {
	sol, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Solicitacao{}, err
	}
	if sol.InteressadoID != actor.ID {
		return Solicitacao{}, ErrNaoAutorizado
	}
	if sol.Status != StatusPendente {
		return Solicitacao{}, ErrStatusInvalido
	}

	sol.Status = StatusCancelada
	sol.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, sol); err != nil {
		return Solicitacao{}, err
	}

	// Quem precisa saber do cancelamento é o protetor.
	if protetorID, err := s.animais.OwnerOf(ctx, sol.AnimalID); err == nil {
		s.emit(ctx, notify.Event{
			Tipo:          notify.EventSolicitacaoCancelada,
			SolicitacaoID: sol.ID,
			TipoPedido:    string(sol.Tipo),
			AnimalID:      sol.AnimalID,
			Destinatario:  protetorID,
			Mensagem:      "solicitação cancelada pelo interessado",
		})
	}

	return sol, nil
}

// ConfirmarApadrinhamento aprova, pela via do protetor, um apadrinhamento
// PENDENTE. Não mexe no status do animal: um animal aceita vários padrinhos
// ao mesmo tempo; só a via administrativa (AtualizarStatus) tira o animal
// do catálogo. Regra de negócio, não esquecimento.
func (s *Service) ConfirmarApadrinhamento(ctx context.Context, id string, actor authz.ActingUser) (Solicitacao, error) {
	return s.transicaoProtetor(ctx, id, actor, StatusAprovada,
		notify.EventSolicitacaoAprovada, "seu apadrinhamento foi confirmado")
}

// NegarApadrinhamento rejeita, pela via do protetor, um apadrinhamento
// PENDENTE. Também não toca no animal.
func (s *Service) NegarApadrinhamento(ctx context.Context, id string, actor authz.ActingUser) (Solicitacao, error) {
	return s.transicaoProtetor(ctx, id, actor, StatusRejeitada,
		notify.EventSolicitacaoRejeitada, "seu apadrinhamento foi negado")
}

func (s *Service) transicaoProtetor(ctx context.Context, id string, actor authz.ActingUser, novo Status, evento, msg string) (Solicitacao, error) {
	sol, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Solicitacao{}, err
	}

	protetorID, err := s.animais.OwnerOf(ctx, sol.AnimalID)
	if err != nil {
		return Solicitacao{}, err
	}
	// Posse transitiva pelo animal; admin passa pelo bypass do predicado.
	if !authz.Owns(actor, protetorID) {
		return Solicitacao{}, ErrNaoAutorizado
	}
	if sol.Status != StatusPendente {
		return Solicitacao{}, ErrStatusInvalido
	}
	if sol.Tipo != TipoApadrinhamento {
		return Solicitacao{}, ErrTipoInvalido
	}

	sol.Status = novo
	sol.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, sol); err != nil {
		return Solicitacao{}, err
	}

	s.notifyInteressado(ctx, sol, evento, msg)
	return sol, nil
}

func (s *Service) notifyInteressado(ctx context.Context, sol Solicitacao, evento, msg string) {
	s.emit(ctx, notify.Event{
		Tipo:          evento,
		SolicitacaoID: sol.ID,
		TipoPedido:    string(sol.Tipo),
		AnimalID:      sol.AnimalID,
		Destinatario:  sol.InteressadoID,
		Mensagem:      msg,
	})
}

// emit publica o evento uma vez. Falha vira log + métrica e mais nada:
// o contrato do canal é "tentou uma vez, falha não é fatal".
func (s *Service) emit(ctx context.Context, evt notify.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, evt); err != nil {
		if s.metrics != nil {
			s.metrics.RecordNotifyFailure()
		}
		if s.log != nil {
			s.log.Warn("falha ao publicar notificação", map[string]any{
				"evento":      evt.Tipo,
				"solicitacao": evt.SolicitacaoID,
				"err":         err.Error(),
			})
		}
		return
	}
	if s.metrics != nil {
		s.metrics.RecordNotifySuccess()
	}
}
