package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"adota-pet/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO animais (
			id, protetor_id,
			nome, especie, raca, idade, porte, descricao, status,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		a.ID,
		a.ProtetorID,
		a.Nome,
		a.Especie,
		a.Raca,
		a.Idade,
		a.Porte,
		a.Descricao,
		a.Status,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserindo animal: %w", err)
	}

	if err := insertFotos(ctx, tx, a.ID, a.Fotos); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, protetor_id,
			nome, especie, raca, idade, porte, descricao, status,
			created_at, updated_at
		FROM animais
		WHERE id = $1
	`, id)

	a, err := scanAnimal(row)
	if err != nil {
		return animals.Animal{}, err
	}

	fotos, err := r.fotosDe(ctx, []string{a.ID})
	if err != nil {
		return animals.Animal{}, err
	}
	a.Fotos = fotos[a.ID]
	return a, nil
}

func (r *AnimalsRepo) ListByStatus(ctx context.Context, status animals.Status) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, protetor_id,
			nome, especie, raca, idade, porte, descricao, status,
			created_at, updated_at
		FROM animais
		WHERE status = $1
		ORDER BY created_at DESC
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	ids := make([]string, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
		ids = append(ids, a.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	fotos, err := r.fotosDe(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Fotos = fotos[out[i].ID]
	}
	return out, nil
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animais
		SET
			nome = $2,
			especie = $3,
			raca = $4,
			idade = $5,
			porte = $6,
			descricao = $7,
			status = $8,
			updated_at = $9
		WHERE id = $1
	`,
		a.ID,
		a.Nome,
		a.Especie,
		a.Raca,
		a.Idade,
		a.Porte,
		a.Descricao,
		a.Status,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) Delete(ctx context.Context, id string) error {
	// fotos e solicitações caem pelo ON DELETE CASCADE
	res, err := r.db.ExecContext(ctx, `DELETE FROM animais WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) AddFotos(ctx context.Context, animalID string, fotos []animals.Foto) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM animais WHERE id = $1)`, animalID,
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return animals.ErrNotFound
	}

	if err := insertFotos(ctx, tx, animalID, fotos); err != nil {
		return err
	}
	return tx.Commit()
}

func insertFotos(ctx context.Context, tx *sql.Tx, animalID string, fotos []animals.Foto) error {
	for _, f := range fotos {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO fotos (id, animal_id, url, legenda)
			VALUES ($1, $2, $3, $4)
		`, f.ID, animalID, f.URL, f.Legenda); err != nil {
			return fmt.Errorf("inserindo foto: %w", err)
		}
	}
	return nil
}

// fotosDe carrega as fotos de vários animais de uma vez, agrupadas por id.
func (r *AnimalsRepo) fotosDe(ctx context.Context, animalIDs []string) (map[string][]animals.Foto, error) {
	out := make(map[string][]animals.Foto)
	if len(animalIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, url, legenda
		FROM fotos
		WHERE animal_id = ANY($1::uuid[])
	`, animalIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var f animals.Foto
		if err := rows.Scan(&f.ID, &f.AnimalID, &f.URL, &f.Legenda); err != nil {
			return nil, err
		}
		out[f.AnimalID] = append(out[f.AnimalID], f)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(row rowScanner) (animals.Animal, error) {
	var a animals.Animal
	if err := row.Scan(
		&a.ID,
		&a.ProtetorID,
		&a.Nome,
		&a.Especie,
		&a.Raca,
		&a.Idade,
		&a.Porte,
		&a.Descricao,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}
