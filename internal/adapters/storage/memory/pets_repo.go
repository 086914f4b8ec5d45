package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-market/internal/domain/pets"
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) ListByStatus(ctx context.Context, status pets.Status, excludeOwnerUserID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.Status != status {
			continue
		}
		if excludeOwnerUserID != "" && p.OwnerUserID == excludeOwnerUserID {
			continue
		}
		out = append(out, p)
	}

	sortByCreatedAsc(out)
	return out, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}

	sortByCreatedAsc(out)
	return out, nil
}

// Update escribe solo los campos de perfil, igual que el UPDATE de
// postgres: status, owner y created_at son del workflow y se preservan
// aunque el caller traiga un snapshot viejo.
func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	stored, exists := r.byID[p.ID]
	if !exists {
		return pets.ErrNotFound
	}

	stored.Name = p.Name
	stored.Breed = p.Breed
	stored.Age = p.Age
	stored.Description = p.Description
	stored.ImageURL = p.ImageURL
	stored.ImageKey = p.ImageKey
	stored.UpdatedAt = p.UpdatedAt

	r.byID[p.ID] = stored
	return nil
}

// UpdateStatusIf: compare-and-swap bajo el mismo lock, así dos transiciones
// concurrentes sobre el mismo pet nunca ven estado parcial.
func (r *petRepo) UpdateStatusIf(ctx context.Context, id string, expected, next pets.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.ErrNotFound
	}
	if p.Status != expected {
		return pets.ErrConflict
	}

	p.Status = next
	r.byID[id] = p
	return nil
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return pets.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// Orden estable por created_at asc (solo para consistencia en dev)
func sortByCreatedAsc(out []pets.Pet) {
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
}
