package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"adota-pet/internal/domain/animals"
)

type AnimalsRepo struct {
	mu   sync.RWMutex
	byID map[string]animals.Animal
}

func NewAnimalsRepo() *AnimalsRepo {
	return &AnimalsRepo{
		byID: make(map[string]animals.Animal),
	}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("animal already exists")
	}
	r.byID[a.ID] = cloneAnimal(a)
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return cloneAnimal(a), nil
}

func (r *AnimalsRepo) ListByStatus(ctx context.Context, status animals.Status) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0)
	for _, a := range r.byID {
		if a.Status == status {
			out = append(out, cloneAnimal(a))
		}
	}

	// mais recentes primeiro, como no catálogo original
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[a.ID]
	if !ok {
		return animals.ErrNotFound
	}
	// Update não mexe em fotos; AddFotos cuida delas.
	a.Fotos = existing.Fotos
	r.byID[a.ID] = cloneAnimal(a)
	return nil
}

func (r *AnimalsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return animals.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *AnimalsRepo) AddFotos(ctx context.Context, animalID string, fotos []animals.Foto) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[animalID]
	if !ok {
		return animals.ErrNotFound
	}
	a.Fotos = append(a.Fotos, fotos...)
	r.byID[animalID] = a
	return nil
}

func cloneAnimal(a animals.Animal) animals.Animal {
	out := a
	out.Fotos = append([]animals.Foto(nil), a.Fotos...)
	return out
}
