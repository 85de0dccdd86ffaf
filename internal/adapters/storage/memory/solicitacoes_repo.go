package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"adota-pet/internal/domain/solicitacoes"
)

// SolicitacoesRepo precisa consultar os animais para resolver a listagem
// por protetor, por isso recebe o AnimalsRepo do mesmo storage.
type SolicitacoesRepo struct {
	mu      sync.RWMutex
	byID    map[string]solicitacoes.Solicitacao
	animais *AnimalsRepo
}

func NewSolicitacoesRepo(animais *AnimalsRepo) *SolicitacoesRepo {
	return &SolicitacoesRepo{
		byID:    make(map[string]solicitacoes.Solicitacao),
		animais: animais,
	}
}

func (r *SolicitacoesRepo) Create(ctx context.Context, s solicitacoes.Solicitacao) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("solicitacao id required")
	}
	if _, exists := r.byID[s.ID]; exists {
		return errors.New("solicitacao already exists")
	}
	r.byID[s.ID] = s
	return nil
}

func (r *SolicitacoesRepo) GetByID(ctx context.Context, id string) (solicitacoes.Solicitacao, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return solicitacoes.Solicitacao{}, solicitacoes.ErrNotFound
	}
	return s, nil
}

func (r *SolicitacoesRepo) Update(ctx context.Context, s solicitacoes.Solicitacao) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[s.ID]; !ok {
		return solicitacoes.ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *SolicitacoesRepo) ListByInteressado(ctx context.Context, interessadoID string) ([]solicitacoes.Solicitacao, error) {
	return r.list(func(s solicitacoes.Solicitacao) bool {
		return s.InteressadoID == interessadoID
	})
}

func (r *SolicitacoesRepo) ListByProtetor(ctx context.Context, protetorID string) ([]solicitacoes.Solicitacao, error) {
	// snapshot dos animais do protetor antes de varrer as solicitações
	r.animais.mu.RLock()
	donos := make(map[string]bool)
	for id, a := range r.animais.byID {
		if a.ProtetorID == protetorID {
			donos[id] = true
		}
	}
	r.animais.mu.RUnlock()

	return r.list(func(s solicitacoes.Solicitacao) bool {
		return donos[s.AnimalID]
	})
}

func (r *SolicitacoesRepo) ListAll(ctx context.Context) ([]solicitacoes.Solicitacao, error) {
	return r.list(func(solicitacoes.Solicitacao) bool { return true })
}

func (r *SolicitacoesRepo) ExistsPendente(ctx context.Context, animalID, interessadoID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.byID {
		if s.AnimalID == animalID && s.InteressadoID == interessadoID && s.Status == solicitacoes.StatusPendente {
			return true, nil
		}
	}
	return false, nil
}

func (r *SolicitacoesRepo) list(keep func(solicitacoes.Solicitacao) bool) ([]solicitacoes.Solicitacao, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]solicitacoes.Solicitacao, 0)
	for _, s := range r.byID {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
