package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"adota-pet/internal/domain/authz"
	"adota-pet/internal/platform/sanitize"
)

var (
	ErrInvalidInput  = errors.New("dados inválidos")
	ErrNotFound      = errors.New("animal não encontrado")
	ErrNaoAutorizado = errors.New("sem permissão para alterar este animal")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Nome      string
	Especie   string
	Raca      string
	Idade     int
	Porte     string
	Descricao string
}

// FotoInput é o par já resolvido pelo handler (arquivo gravado → URL pública).
type FotoInput struct {
	URL     string
	Legenda string
}

// Create cadastra o animal já com as fotos anexadas. Nasce DISPONIVEL.
func (s *Service) Create(ctx context.Context, protetorID string, in CreateInput, fotos []FotoInput) (Animal, error) {
	if strings.TrimSpace(protetorID) == "" {
		return Animal{}, ErrInvalidInput
	}
	nome := strings.TrimSpace(in.Nome)
	descricao := sanitize.Text(in.Descricao)
	if nome == "" || descricao == "" {
		return Animal{}, ErrInvalidInput
	}
	if !ValidEspecie(Especie(in.Especie)) || !ValidPorte(Porte(in.Porte)) {
		return Animal{}, ErrInvalidInput
	}
	if in.Idade < IdadeMin || in.Idade > IdadeMax {
		return Animal{}, ErrInvalidInput
	}

	now := s.now()
	a := Animal{
		ID:         uuid.NewString(),
		ProtetorID: protetorID,
		Nome:       nome,
		Especie:    Especie(in.Especie),
		Raca:       strings.TrimSpace(in.Raca),
		Idade:      in.Idade,
		Porte:      Porte(in.Porte),
		Descricao:  descricao,
		Status:     StatusDisponivel,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, f := range fotos {
		a.Fotos = append(a.Fotos, Foto{
			ID:       uuid.NewString(),
			URL:      f.URL,
			Legenda:  sanitize.Text(f.Legenda),
			AnimalID: a.ID,
		})
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// List é o catálogo público: só animais DISPONIVEL aparecem.
// Adotados/apadrinhados/indisponíveis somem da listagem de propósito.
func (s *Service) List(ctx context.Context) ([]Animal, error) {
	return s.repo.ListByStatus(ctx, StatusDisponivel)
}

// GetByID não filtra por status: a página de detalhe enxerga qualquer animal.
func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	return s.repo.GetByID(ctx, id)
}

// OwnerOf expõe o protetor dono de um animal.
// Usado pelo módulo de solicitações para evitar ciclo de imports.
func (s *Service) OwnerOf(ctx context.Context, animalID string) (string, error) {
	a, err := s.GetByID(ctx, animalID)
	if err != nil {
		return "", err
	}
	return a.ProtetorID, nil
}

type UpdateInput struct {
	// Ponteiros para PATCH real: nil = não tocar.
	Nome      *string
	Especie   *string
	Raca      *string
	Idade     *int
	Porte     *string
	Descricao *string
}

// Update re-busca o animal e aplica o predicado de posse antes de mutar.
// Status nunca é editável por aqui.
func (s *Service) Update(ctx context.Context, id string, actor authz.ActingUser, in UpdateInput) (Animal, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if !authz.Owns(actor, a.ProtetorID) {
		return Animal{}, ErrNaoAutorizado
	}

	if in.Nome != nil {
		nome := strings.TrimSpace(*in.Nome)
		if nome == "" {
			return Animal{}, ErrInvalidInput
		}
		a.Nome = nome
	}
	if in.Especie != nil {
		if !ValidEspecie(Especie(*in.Especie)) {
			return Animal{}, ErrInvalidInput
		}
		a.Especie = Especie(*in.Especie)
	}
	if in.Raca != nil {
		a.Raca = strings.TrimSpace(*in.Raca)
	}
	if in.Idade != nil {
		if *in.Idade < IdadeMin || *in.Idade > IdadeMax {
			return Animal{}, ErrInvalidInput
		}
		a.Idade = *in.Idade
	}
	if in.Porte != nil {
		if !ValidPorte(Porte(*in.Porte)) {
			return Animal{}, ErrInvalidInput
		}
		a.Porte = Porte(*in.Porte)
	}
	if in.Descricao != nil {
		descricao := sanitize.Text(*in.Descricao)
		if descricao == "" {
			return Animal{}, ErrInvalidInput
		}
		a.Descricao = descricao
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// Delete remove o animal (e as fotos junto, por cascata no repositório).
func (s *Service) Delete(ctx context.Context, id string, actor authz.ActingUser) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.Owns(actor, a.ProtetorID) {
		return ErrNaoAutorizado
	}
	return s.repo.Delete(ctx, id)
}

// AddFotos anexa fotos novas a um animal existente.
func (s *Service) AddFotos(ctx context.Context, id string, actor authz.ActingUser, fotos []FotoInput) (Animal, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if !authz.Owns(actor, a.ProtetorID) {
		return Animal{}, ErrNaoAutorizado
	}
	if len(fotos) == 0 {
		return Animal{}, ErrInvalidInput
	}

	novas := make([]Foto, 0, len(fotos))
	for _, f := range fotos {
		novas = append(novas, Foto{
			ID:       uuid.NewString(),
			URL:      f.URL,
			Legenda:  sanitize.Text(f.Legenda),
			AnimalID: id,
		})
	}

	if err := s.repo.AddFotos(ctx, id, novas); err != nil {
		return Animal{}, err
	}
	return s.repo.GetByID(ctx, id)
}

// SetStatus é o efeito colateral da aprovação de uma solicitação de adoção
// ou apadrinhamento. Nenhum handler chama isso diretamente.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) error {
	if !ValidStatus(status) {
		return ErrInvalidInput
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.Status = status
	a.UpdatedAt = s.now()
	return s.repo.Update(ctx, a)
}
