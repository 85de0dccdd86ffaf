package memory

import (
	"context"
	"sort"

	"adota-pet/internal/domain/admin"
	"adota-pet/internal/domain/animals"
	"adota-pet/internal/domain/solicitacoes"
)

// AdminRepo agrega sobre os três repositórios do mesmo storage.
// As projeções são montadas a cada chamada; o volume de dev não justifica cache.
type AdminRepo struct {
	users   *UsersRepo
	animais *AnimalsRepo
	sols    *SolicitacoesRepo
}

func NewAdminRepo(users *UsersRepo, animais *AnimalsRepo, sols *SolicitacoesRepo) *AdminRepo {
	return &AdminRepo{users: users, animais: animais, sols: sols}
}

func (r *AdminRepo) DashboardStats(ctx context.Context) (admin.DashboardStats, error) {
	var stats admin.DashboardStats

	r.users.mu.RLock()
	stats.TotalUsuarios = len(r.users.byID)
	r.users.mu.RUnlock()

	r.animais.mu.RLock()
	stats.TotalAnimais = len(r.animais.byID)
	for _, a := range r.animais.byID {
		switch a.Status {
		case animals.StatusDisponivel:
			stats.AnimaisDisponiveis++
		case animals.StatusAdotado:
			stats.AnimaisAdotados++
		}
	}
	r.animais.mu.RUnlock()

	r.sols.mu.RLock()
	stats.TotalSolicitacoes = len(r.sols.byID)
	for _, s := range r.sols.byID {
		if s.Status == solicitacoes.StatusPendente {
			stats.SolicitacoesPendentes++
		}
	}
	r.sols.mu.RUnlock()

	return stats, nil
}

func (r *AdminRepo) ListUsers(ctx context.Context) ([]admin.UserListItem, error) {
	animaisPor := make(map[string]int)
	r.animais.mu.RLock()
	for _, a := range r.animais.byID {
		animaisPor[a.ProtetorID]++
	}
	r.animais.mu.RUnlock()

	solsPor := make(map[string]int)
	r.sols.mu.RLock()
	for _, s := range r.sols.byID {
		solsPor[s.InteressadoID]++
	}
	r.sols.mu.RUnlock()

	r.users.mu.RLock()
	out := make([]admin.UserListItem, 0, len(r.users.byID))
	for _, u := range r.users.byID {
		out = append(out, admin.UserListItem{
			ID:                u.ID,
			Nome:              u.Nome,
			Email:             u.Email,
			Role:              string(u.Role),
			TotalAnimais:      animaisPor[u.ID],
			TotalSolicitacoes: solsPor[u.ID],
			CreatedAt:         u.CreatedAt,
		})
	}
	r.users.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *AdminRepo) ListAnimals(ctx context.Context) ([]admin.AnimalListItem, error) {
	solsPor := make(map[string]int)
	r.sols.mu.RLock()
	for _, s := range r.sols.byID {
		solsPor[s.AnimalID]++
	}
	r.sols.mu.RUnlock()

	nomes := r.userNames()

	r.animais.mu.RLock()
	out := make([]admin.AnimalListItem, 0, len(r.animais.byID))
	for _, a := range r.animais.byID {
		fotos := make([]string, 0, len(a.Fotos))
		for _, f := range a.Fotos {
			fotos = append(fotos, f.URL)
		}
		out = append(out, admin.AnimalListItem{
			ID:                a.ID,
			Nome:              a.Nome,
			Especie:           string(a.Especie),
			Status:            string(a.Status),
			ProtetorID:        a.ProtetorID,
			ProtetorNome:      nomes[a.ProtetorID],
			TotalSolicitacoes: solsPor[a.ID],
			Fotos:             fotos,
			CreatedAt:         a.CreatedAt,
		})
	}
	r.animais.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *AdminRepo) ListSolicitacoes(ctx context.Context) ([]admin.SolicitacaoListItem, error) {
	nomes := r.userNames()

	type animalInfo struct {
		nome     string
		protetor string
	}
	infos := make(map[string]animalInfo)
	r.animais.mu.RLock()
	for id, a := range r.animais.byID {
		infos[id] = animalInfo{nome: a.Nome, protetor: a.ProtetorID}
	}
	r.animais.mu.RUnlock()

	r.sols.mu.RLock()
	out := make([]admin.SolicitacaoListItem, 0, len(r.sols.byID))
	for _, s := range r.sols.byID {
		info := infos[s.AnimalID]
		out = append(out, admin.SolicitacaoListItem{
			ID:              s.ID,
			Tipo:            string(s.Tipo),
			Status:          string(s.Status),
			Mensagem:        s.Mensagem,
			AnimalID:        s.AnimalID,
			AnimalNome:      info.nome,
			ProtetorNome:    nomes[info.protetor],
			InteressadoID:   s.InteressadoID,
			InteressadoNome: nomes[s.InteressadoID],
			CreatedAt:       s.CreatedAt,
		})
	}
	r.sols.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *AdminRepo) userNames() map[string]string {
	r.users.mu.RLock()
	defer r.users.mu.RUnlock()

	nomes := make(map[string]string, len(r.users.byID))
	for id, u := range r.users.byID {
		nomes[id] = u.Nome
	}
	return nomes
}
