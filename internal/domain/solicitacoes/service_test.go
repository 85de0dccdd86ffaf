package solicitacoes

import (
	"context"
	"errors"
	"testing"
	"time"

	"adota-pet/internal/domain/animals"
	"adota-pet/internal/domain/authz"
	"adota-pet/internal/ports/notify"
)

// -------------------------
// Test repos e fakes
// -------------------------

type testRepo struct {
	byID map[string]Solicitacao
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Solicitacao{}}
}

func (r *testRepo) Create(ctx context.Context, s Solicitacao) error {
	if s.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[s.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Solicitacao, error) {
	s, ok := r.byID[id]
	if !ok {
		return Solicitacao{}, ErrNotFound
	}
	return s, nil
}

func (r *testRepo) Update(ctx context.Context, s Solicitacao) error {
	if _, ok := r.byID[s.ID]; !ok {
		return ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) ListByInteressado(ctx context.Context, interessadoID string) ([]Solicitacao, error) {
	out := make([]Solicitacao, 0)
	for _, s := range r.byID {
		if s.InteressadoID == interessadoID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *testRepo) ListByProtetor(ctx context.Context, protetorID string) ([]Solicitacao, error) {
	return nil, nil // não usado nos testes de service
}

func (r *testRepo) ListAll(ctx context.Context) ([]Solicitacao, error) {
	out := make([]Solicitacao, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	return out, nil
}

func (r *testRepo) ExistsPendente(ctx context.Context, animalID, interessadoID string) (bool, error) {
	for _, s := range r.byID {
		if s.AnimalID == animalID && s.InteressadoID == interessadoID && s.Status == StatusPendente {
			return true, nil
		}
	}
	return false, nil
}

type testAnimalsRepo struct {
	byID map[string]animals.Animal
}

func newTestAnimalsRepo() *testAnimalsRepo {
	return &testAnimalsRepo{byID: map[string]animals.Animal{}}
}

func (r *testAnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	r.byID[a.ID] = a
	return nil
}

func (r *testAnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

func (r *testAnimalsRepo) ListByStatus(ctx context.Context, status animals.Status) ([]animals.Animal, error) {
	return nil, nil
}

func (r *testAnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	if _, ok := r.byID[a.ID]; !ok {
		return animals.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testAnimalsRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *testAnimalsRepo) AddFotos(ctx context.Context, animalID string, fotos []animals.Foto) error {
	return nil
}

type captureNotifier struct {
	events []notify.Event
	fail   bool
}

func (n *captureNotifier) Notify(ctx context.Context, evt notify.Event) error {
	if n.fail {
		return errors.New("broker down")
	}
	n.events = append(n.events, evt)
	return nil
}

type captureMetrics struct {
	ok, fail int
}

func (m *captureMetrics) RecordNotifySuccess() { m.ok++ }
func (m *captureMetrics) RecordNotifyFailure() { m.fail++ }

type fixture struct {
	svc      *Service
	repo     *testRepo
	animais  *testAnimalsRepo
	notifier *captureNotifier
	metrics  *captureMetrics
}

func newFixture() *fixture {
	repo := newTestRepo()
	animaisRepo := newTestAnimalsRepo()
	notifier := &captureNotifier{}
	m := &captureMetrics{}

	svc := NewService(repo, animals.NewService(animaisRepo), notifier, m, nil)
	return &fixture{
		svc:      svc,
		repo:     repo,
		animais:  animaisRepo,
		notifier: notifier,
		metrics:  m,
	}
}

func (f *fixture) seedAnimal(id, protetorID string, status animals.Status) {
	f.animais.byID[id] = animals.Animal{
		ID:         id,
		ProtetorID: protetorID,
		Nome:       "Rex",
		Especie:    animals.EspecieCao,
		Porte:      animals.PorteMedio,
		Descricao:  "dócil",
		Status:     status,
	}
}

var (
	interessado = authz.ActingUser{ID: "interessado-1", Role: authz.RoleInteressado}
	protetor    = authz.ActingUser{ID: "protetor-1", Role: authz.RoleProtetor}
	admin       = authz.ActingUser{ID: "admin-1", Role: authz.RoleAdmin}
)

// -------------------------
// Criar
// -------------------------

func TestService_Criar_NascePendente(t *testing.T) {
	f := newFixture()
	f.seedAnimal("animal-1", protetor.ID, animals.StatusDisponivel)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	sol, err := f.svc.Criar(context.Background(), interessado, CriarInput{
		Tipo:     TipoAdocao,
		AnimalID: "animal-1",
		Mensagem: "quero muito adotar",
	})
	if err != nil {
		t.Fatalf("Criar returned error: %v", err)
	}
	if sol.Status != StatusPendente {
		t.Fatalf("expected PENDENTE, got %s", sol.Status)
	}
	if sol.InteressadoID != interessado.ID || sol.AnimalID != "animal-1" {
		t.Fatalf("unexpected solicitacao: %#v", sol)
	}
	if sol.CreatedAt != now || sol.UpdatedAt != now {
		t.Fatalf("expected timestamps = now")
	}

	// notifica o protetor
	if len(f.notifier.events) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(f.notifier.events))
	}
	evt := f.notifier.events[0]
	if evt.Tipo != notify.EventSolicitacaoCriada || evt.Destinatario != protetor.ID {
		t.Fatalf("unexpected event: %#v", evt)
	}
	if f.metrics.ok != 1 {
		t.Fatalf("expected notify success recorded")
	}
}

func TestService_Criar_SanitizaMensagem(t *testing.T) {
	f := newFixture()
	f.seedAnimal("animal-1", protetor.ID, animals.StatusDisponivel)

	sol, err := f.svc.Criar(context.Background(), interessado, CriarInput{
		Tipo:     TipoApadrinhamento,
		AnimalID: "animal-1",
		Mensagem: "<script>alert(1)</script>oi",
	})
	if err != nil {
		t.Fatalf("Criar error: %v", err)
	}
	if sol.Mensagem != "oi" {
		t.Fatalf("expected sanitized mensagem, got %q", sol.Mensagem)
	}
}

func TestService_Criar_PreCondicoes(t *testing.T) {
	f := newFixture()
	f.seedAnimal("adotado", protetor.ID, animals.StatusAdotado)
	f.seedAnimal("meu", interessado.ID, animals.StatusDisponivel)
	f.seedAnimal("livre", protetor.ID, animals.StatusDisponivel)

	// animal inexistente: 404, não 400
	_, err := f.svc.Criar(context.Background(), interessado, CriarInput{Tipo: TipoAdocao, AnimalID: "fantasma"})
	if !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected animals.ErrNotFound, got %v", err)
	}

	// indisponível
	_, err = f.svc.Criar(context.Background(), interessado, CriarInput{Tipo: TipoAdocao, AnimalID: "adotado"})
	if !errors.Is(err, ErrAnimalIndisponivel) {
		t.Fatalf("expected ErrAnimalIndisponivel, got %v", err)
	}

	// o próprio animal
	_, err = f.svc.Criar(context.Background(), interessado, CriarInput{Tipo: TipoAdocao, AnimalID: "meu"})
	if !errors.Is(err, ErrAnimalProprio) {
		t.Fatalf("expected ErrAnimalProprio, got %v", err)
	}

	// duplicada pendente
	if _, err := f.svc.Criar(context.Background(), interessado, CriarInput{Tipo: TipoAdocao, AnimalID: "livre"}); err != nil {
		t.Fatalf("first Criar error: %v", err)
	}
	_, err = f.svc.Criar(context.Background(), interessado, CriarInput{Tipo: TipoApadrinhamento, AnimalID: "livre"})
	if !errors.Is(err, ErrSolicitacaoDuplicada) {
		t.Fatalf("expected ErrSolicitacaoDuplicada, got %v", err)
	}

	// tipo inválido
	_, err = f.svc.Criar(context.Background(), interessado, CriarInput{Tipo: "COMPRA", AnimalID: "livre"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Criar_PermiteNovaAposTerminal(t *testing.T) {
	f := newFixture()
	f.seedAnimal("animal-1", protetor.ID, animals.StatusDisponivel)

	sol, err := f.svc.Criar(context.Background(), interessado, CriarInput{Tipo: TipoAdocao, AnimalID: "animal-1"})
	if err != nil {
		t.Fatalf("Criar error: %v", err)
	}
	if _, err := f.svc.Cancelar(context.Background(), sol.ID, interessado); err != nil {
		t.Fatalf("Cancelar error: %v", err)
	}

	// terminal libera o par (animal, interessado)
	if _, err := f.svc.Criar(context.Background(), interessado, CriarInput{Tipo: TipoAdocao, AnimalID: "animal-1"}); err != nil {
		t.Fatalf("expected new solicitacao after terminal, got %v", err)
	}
}

func TestService_Criar_NotificacaoFalhaNaoDesfaz(t *testing.T) {
	f := newFixture()
	f.seedAnimal("animal-1", protetor.ID, animals.StatusDisponivel)
	f.notifier.fail = true

	sol, err := f.svc.Criar(context.Background(), interessado, CriarInput{Tipo: TipoAdocao, AnimalID: "animal-1"})
	if err != nil {
		t.Fatalf("Criar should succeed despite notifier failure, got %v", err)
	}
	if _, err := f.repo.GetByID(context.Background(), sol.ID); err != nil {
		t.Fatalf("solicitacao should be persisted, got %v", err)
	}
	if f.metrics.fail != 1 {
		t.Fatalf("expected notify failure recorded, got %d", f.metrics.fail)
	}
}

// -------------------------
// Cancelar
// -------------------------

func TestService_Cancelar_SoInteressadoEPendente(t *testing.T) {
	f := newFixture()
	f.seedAnimal("animal-1", protetor.ID, animals.StatusDisponivel)

	sol, _ := f.svc.Criar(context.Background(), interessado, CriarInput{Tipo: TipoAdocao, AnimalID: "animal-1"})

	// outro usuário não cancela, nem o protetor do animal
	if _, err := f.svc.Cancelar(context.Background(), sol.ID, protetor); !errors.Is(err, ErrNaoAutorizado) {
		t.Fatalf("expected ErrNaoAutorizado, got %v", err)
	}

	got, err := f.svc.Cancelar(context.Background(), sol.ID, interessado)
	if err != nil {
		t.Fatalf("Cancelar error: %v", err)
	}
	if got.Status != StatusCancelada {
		t.Fatalf("expected CANCELADA, got %s", got.Status)
	}

	// segunda vez: não é mais PENDENTE
	if _, err := f.svc.Cancelar(context.Background(), sol.ID, interessado); !errors.Is(err, ErrStatusInvalido) {
		t.Fatalf("expected ErrStatusInvalido, got %v", err)
	}

	// o cancelamento notifica o protetor
	last := f.notifier.events[len(f.notifier.events)-1]
	if last.Tipo != notify.EventSolicitacaoCancelada || last.Destinatario != protetor.ID {
		t.Fatalf("unexpected cancel event: %#v", last)
	}
}

// -------------------------
// AtualizarStatus (via admin)
// -------------------------

func TestService_AtualizarStatus_AprovarAdocaoMarcaAdotado(t *testing.T) {
	f := newFixture()
	f.seedAnimal("animal-1", protetor.ID, animals.StatusDisponivel)

	sol, _ := f.svc.Criar(context.Background(), interessado, CriarInput{Tipo: TipoAdocao, AnimalID: "animal-1"})

	got, err := f.svc.AtualizarStatus(context.Background(), sol.ID, StatusAprovada)
	if err != nil {
		t.Fatalf("AtualizarStatus error: %v", err)
	}
	if got.Status != StatusAprovada {
		t.Fatalf("expected APROVADA, got %s", got.Status)
	}

	a := f.animais.byID["animal-1"]
	if a.Status != animals.StatusAdotado {
		t.Fatalf("expected animal ADOTADO, got %s", a.Status)
	}

	// o interessado é notificado da aprovação
	last := f.notifier.events[len(f.notifier.events)-1]
	if last.Tipo != notify.EventSolicitacaoAprovada || last.Destinatario != interessado.ID {
		t.Fatalf("unexpected approve event: %#v", last)
	}
}

func TestService_AtualizarStatus_AprovarApadrinhamentoMarcaApadrinhado(t *testing.T) {
	f := newFixture()
	f.seedAnimal("animal-1", protetor.ID, animals.StatusDisponivel)

	sol, _ := f.svc.Criar(context.Background(), interessado, CriarInput{Tipo: TipoApadrinhamento, AnimalID: "animal-1"})

	if _, err := f.svc.AtualizarStatus(context.Background(), sol.ID, StatusAprovada); err != nil {
		t.Fatalf("AtualizarStatus error: %v", err)
	}
	if a := f.animais.byID["animal-1"]; a.Status != animals.StatusApadrinhado {
		t.Fatalf("expected animal APADRINHADO, got %s", a.Status)
	}
}

func TestService_AtualizarStatus_RejeitarNaoTocaAnimal(t *testing.T) {
	f := newFixture()
	f.seedAnimal("animal-1", protetor.ID, animals.StatusDisponivel)

	sol, _ := f.svc.Criar(context.Background(), interessado, CriarInput{Tipo: TipoAdocao, AnimalID: "animal-1"})

	if _, err := f.svc.AtualizarStatus(context.Background(), sol.ID, StatusRejeitada); err != nil {
		t.Fatalf("AtualizarStatus error: %v", err)
	}
	if a := f.animais.byID["animal-1"]; a.Status != animals.StatusDisponivel {
		t.Fatalf("expected animal still DISPONIVEL, got %s", a.Status)
	}
}

func TestService_AtualizarStatus_SobrescreveSemGuarda(t *testing.T) {
	// escape hatch administrativo: nenhuma checagem de estado atual
	f := newFixture()
	f.seedAnimal("animal-1", protetor.ID, animals.StatusDisponivel)

	sol, _ := f.svc.Criar(context.Background(), interessado, CriarInput{Tipo: TipoAdocao, AnimalID: "animal-1"})
	if _, err := f.svc.Cancelar(context.Background(), sol.ID, interessado); err != nil {
		t.Fatalf("Cancelar error: %v", err)
	}

	got, err := f.svc.AtualizarStatus(context.Background(), sol.ID, StatusPendente)
	if err != nil {
		t.Fatalf("expected admin overwrite from terminal to work, got %v", err)
	}
	if got.Status != StatusPendente {
		t.Fatalf("expected PENDENTE, got %s", got.Status)
	}

	if _, err := f.svc.AtualizarStatus(context.Background(), sol.ID, "INVENTADO"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
}

// -------------------------
// Confirmar / Negar apadrinhamento
// -------------------------

func TestService_ConfirmarApadrinhamento_NaoTocaAnimal(t *testing.T) {
	f := newFixture()
	f.seedAnimal("animal-1", protetor.ID, animals.StatusDisponivel)

	sol, _ := f.svc.Criar(context.Background(), interessado, CriarInput{Tipo: TipoApadrinhamento, AnimalID: "animal-1"})

	got, err := f.svc.ConfirmarApadrinhamento(context.Background(), sol.ID, protetor)
	if err != nil {
		t.Fatalf("ConfirmarApadrinhamento error: %v", err)
	}
	if got.Status != StatusAprovada {
		t.Fatalf("expected APROVADA, got %s", got.Status)
	}

	// o animal segue DISPONIVEL: vários padrinhos são permitidos
	if a := f.animais.byID["animal-1"]; a.Status != animals.StatusDisponivel {
		t.Fatalf("expected animal still DISPONIVEL, got %s", a.Status)
	}

	last := f.notifier.events[len(f.notifier.events)-1]
	if last.Tipo != notify.EventSolicitacaoAprovada || last.Destinatario != interessado.ID {
		t.Fatalf("unexpected event: %#v", last)
	}
}

func TestService_NegarApadrinhamento(t *testing.T) {
	f := newFixture()
	f.seedAnimal("animal-1", protetor.ID, animals.StatusDisponivel)

	sol, _ := f.svc.Criar(context.Background(), interessado, CriarInput{Tipo: TipoApadrinhamento, AnimalID: "animal-1"})

	got, err := f.svc.NegarApadrinhamento(context.Background(), sol.ID, protetor)
	if err != nil {
		t.Fatalf("NegarApadrinhamento error: %v", err)
	}
	if got.Status != StatusRejeitada {
		t.Fatalf("expected REJEITADA, got %s", got.Status)
	}
	if a := f.animais.byID["animal-1"]; a.Status != animals.StatusDisponivel {
		t.Fatalf("expected animal untouched, got %s", a.Status)
	}
}

func TestService_ConfirmarApadrinhamento_Guardas(t *testing.T) {
	f := newFixture()
	f.seedAnimal("animal-1", protetor.ID, animals.StatusDisponivel)

	apadrinhamento, _ := f.svc.Criar(context.Background(), interessado, CriarInput{Tipo: TipoApadrinhamento, AnimalID: "animal-1"})

	// só o protetor dono do animal (ou admin)
	outro := authz.ActingUser{ID: "protetor-2", Role: authz.RoleProtetor}
	if _, err := f.svc.ConfirmarApadrinhamento(context.Background(), apadrinhamento.ID, outro); !errors.Is(err, ErrNaoAutorizado) {
		t.Fatalf("expected ErrNaoAutorizado, got %v", err)
	}
	if _, err := f.svc.ConfirmarApadrinhamento(context.Background(), apadrinhamento.ID, admin); err != nil {
		t.Fatalf("admin bypass should work, got %v", err)
	}

	// já aprovado: não é mais PENDENTE
	if _, err := f.svc.ConfirmarApadrinhamento(context.Background(), apadrinhamento.ID, protetor); !errors.Is(err, ErrStatusInvalido) {
		t.Fatalf("expected ErrStatusInvalido, got %v", err)
	}
}

func TestService_ConfirmarApadrinhamento_SoApadrinhamento(t *testing.T) {
	f := newFixture()
	f.seedAnimal("animal-1", protetor.ID, animals.StatusDisponivel)

	adocao, _ := f.svc.Criar(context.Background(), interessado, CriarInput{Tipo: TipoAdocao, AnimalID: "animal-1"})

	if _, err := f.svc.ConfirmarApadrinhamento(context.Background(), adocao.ID, protetor); !errors.Is(err, ErrTipoInvalido) {
		t.Fatalf("expected ErrTipoInvalido, got %v", err)
	}
	if _, err := f.svc.NegarApadrinhamento(context.Background(), adocao.ID, protetor); !errors.Is(err, ErrTipoInvalido) {
		t.Fatalf("expected ErrTipoInvalido, got %v", err)
	}
}
