package postgres

import (
	"context"
	"database/sql"

	"adota-pet/internal/domain/admin"
)

// AdminRepo resolve as projeções do dashboard direto em SQL.
// São queries independentes, sem transação: o dashboard tolera
// pequenas divergências entre contagens.
type AdminRepo struct {
	db *sql.DB
}

func NewAdminRepo(db *sql.DB) *AdminRepo {
	return &AdminRepo{db: db}
}

func (r *AdminRepo) DashboardStats(ctx context.Context) (admin.DashboardStats, error) {
	var stats admin.DashboardStats

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM users`, &stats.TotalUsuarios},
		{`SELECT COUNT(*) FROM animais`, &stats.TotalAnimais},
		{`SELECT COUNT(*) FROM solicitacoes`, &stats.TotalSolicitacoes},
		{`SELECT COUNT(*) FROM solicitacoes WHERE status = 'PENDENTE'`, &stats.SolicitacoesPendentes},
		{`SELECT COUNT(*) FROM animais WHERE status = 'DISPONIVEL'`, &stats.AnimaisDisponiveis},
		{`SELECT COUNT(*) FROM animais WHERE status = 'ADOTADO'`, &stats.AnimaisAdotados},
	}
	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return admin.DashboardStats{}, err
		}
	}
	return stats, nil
}

func (r *AdminRepo) ListUsers(ctx context.Context) ([]admin.UserListItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			u.id, u.nome, u.email, u.role, u.created_at,
			(SELECT COUNT(*) FROM animais a WHERE a.protetor_id = u.id),
			(SELECT COUNT(*) FROM solicitacoes s WHERE s.interessado_id = u.id)
		FROM users u
		ORDER BY u.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]admin.UserListItem, 0)
	for rows.Next() {
		var item admin.UserListItem
		if err := rows.Scan(
			&item.ID,
			&item.Nome,
			&item.Email,
			&item.Role,
			&item.CreatedAt,
			&item.TotalAnimais,
			&item.TotalSolicitacoes,
		); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *AdminRepo) ListAnimals(ctx context.Context) ([]admin.AnimalListItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			a.id, a.nome, a.especie, a.status, a.created_at,
			a.protetor_id, u.nome,
			(SELECT COUNT(*) FROM solicitacoes s WHERE s.animal_id = a.id)
		FROM animais a
		JOIN users u ON u.id = a.protetor_id
		ORDER BY a.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]admin.AnimalListItem, 0)
	for rows.Next() {
		var item admin.AnimalListItem
		if err := rows.Scan(
			&item.ID,
			&item.Nome,
			&item.Especie,
			&item.Status,
			&item.CreatedAt,
			&item.ProtetorID,
			&item.ProtetorNome,
			&item.TotalSolicitacoes,
		); err != nil {
			return nil, err
		}
		item.Fotos = make([]string, 0)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	urls, err := r.fotoURLs(ctx)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if u, ok := urls[out[i].ID]; ok {
			out[i].Fotos = u
		}
	}
	return out, nil
}

func (r *AdminRepo) fotoURLs(ctx context.Context) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT animal_id, url FROM fotos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var animalID, url string
		if err := rows.Scan(&animalID, &url); err != nil {
			return nil, err
		}
		out[animalID] = append(out[animalID], url)
	}
	return out, rows.Err()
}

func (r *AdminRepo) ListSolicitacoes(ctx context.Context) ([]admin.SolicitacaoListItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			s.id, s.tipo, s.status, s.mensagem, s.created_at,
			s.animal_id, a.nome, p.nome,
			s.interessado_id, i.nome
		FROM solicitacoes s
		JOIN animais a ON a.id = s.animal_id
		JOIN users p ON p.id = a.protetor_id
		JOIN users i ON i.id = s.interessado_id
		ORDER BY s.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]admin.SolicitacaoListItem, 0)
	for rows.Next() {
		var item admin.SolicitacaoListItem
		if err := rows.Scan(
			&item.ID,
			&item.Tipo,
			&item.Status,
			&item.Mensagem,
			&item.CreatedAt,
			&item.AnimalID,
			&item.AnimalNome,
			&item.ProtetorNome,
			&item.InteressadoID,
			&item.InteressadoNome,
		); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
