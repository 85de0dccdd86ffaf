package postgres

import (
	"context"
	"database/sql"

	"adota-pet/internal/domain/solicitacoes"
)

type SolicitacoesRepo struct {
	db *sql.DB
}

func NewSolicitacoesRepo(db *sql.DB) *SolicitacoesRepo {
	return &SolicitacoesRepo{db: db}
}

func (r *SolicitacoesRepo) Create(ctx context.Context, s solicitacoes.Solicitacao) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO solicitacoes (
			id, tipo, status, mensagem,
			animal_id, interessado_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		s.ID,
		s.Tipo,
		s.Status,
		s.Mensagem,
		s.AnimalID,
		s.InteressadoID,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if isUniqueViolation(err) {
		// índice parcial uq_solicitacao_pendente: corrida perdida no
		// read-then-insert vira o mesmo erro da checagem do serviço
		return solicitacoes.ErrSolicitacaoDuplicada
	}
	return err
}

func (r *SolicitacoesRepo) GetByID(ctx context.Context, id string) (solicitacoes.Solicitacao, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, tipo, status, mensagem, animal_id, interessado_id, created_at, updated_at
		FROM solicitacoes
		WHERE id = $1
	`, id)

	var s solicitacoes.Solicitacao
	if err := row.Scan(
		&s.ID,
		&s.Tipo,
		&s.Status,
		&s.Mensagem,
		&s.AnimalID,
		&s.InteressadoID,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return solicitacoes.Solicitacao{}, solicitacoes.ErrNotFound
		}
		return solicitacoes.Solicitacao{}, err
	}
	return s, nil
}

func (r *SolicitacoesRepo) Update(ctx context.Context, s solicitacoes.Solicitacao) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE solicitacoes
		SET status = $2, updated_at = $3
		WHERE id = $1
	`,
		s.ID,
		s.Status,
		s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return solicitacoes.ErrNotFound
	}
	return nil
}

func (r *SolicitacoesRepo) ListByInteressado(ctx context.Context, interessadoID string) ([]solicitacoes.Solicitacao, error) {
	return r.queryList(ctx, `
		SELECT id, tipo, status, mensagem, animal_id, interessado_id, created_at, updated_at
		FROM solicitacoes
		WHERE interessado_id = $1
		ORDER BY created_at DESC
	`, interessadoID)
}

func (r *SolicitacoesRepo) ListByProtetor(ctx context.Context, protetorID string) ([]solicitacoes.Solicitacao, error) {
	return r.queryList(ctx, `
		SELECT s.id, s.tipo, s.status, s.mensagem, s.animal_id, s.interessado_id, s.created_at, s.updated_at
		FROM solicitacoes s
		JOIN animais a ON a.id = s.animal_id
		WHERE a.protetor_id = $1
		ORDER BY s.created_at DESC
	`, protetorID)
}

func (r *SolicitacoesRepo) ListAll(ctx context.Context) ([]solicitacoes.Solicitacao, error) {
	return r.queryList(ctx, `
		SELECT id, tipo, status, mensagem, animal_id, interessado_id, created_at, updated_at
		FROM solicitacoes
		ORDER BY created_at DESC
	`)
}

func (r *SolicitacoesRepo) ExistsPendente(ctx context.Context, animalID, interessadoID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM solicitacoes
			WHERE animal_id = $1 AND interessado_id = $2 AND status = 'PENDENTE'
		)
	`, animalID, interessadoID).Scan(&exists)
	return exists, err
}

func (r *SolicitacoesRepo) queryList(ctx context.Context, query string, args ...any) ([]solicitacoes.Solicitacao, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]solicitacoes.Solicitacao, 0)
	for rows.Next() {
		var s solicitacoes.Solicitacao
		if err := rows.Scan(
			&s.ID,
			&s.Tipo,
			&s.Status,
			&s.Mensagem,
			&s.AnimalID,
			&s.InteressadoID,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
