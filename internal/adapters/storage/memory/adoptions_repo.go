package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-adoption-market/internal/domain/adoptions"
)

type adoptionRepo struct {
	mu   sync.RWMutex
	byID map[string]adoptions.Request
}

func NewAdoptionRepo() adoptions.Repository {
	return &adoptionRepo{
		byID: make(map[string]adoptions.Request),
	}
}

func (r *adoptionRepo) Create(ctx context.Context, a adoptions.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("adoption id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("adoption already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *adoptionRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return adoptions.Request{}, adoptions.ErrNotFound
	}
	return a, nil
}

func (r *adoptionRepo) FindPendingFor(ctx context.Context, petID, adopterUserID string) (adoptions.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if a.PetID == petID && a.AdopterUserID == adopterUserID && a.Status == adoptions.StatusPending {
			return a, nil
		}
	}
	return adoptions.Request{}, adoptions.ErrNotFound
}

func (r *adoptionRepo) ListByAdopter(ctx context.Context, adopterUserID string) ([]adoptions.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.Request, 0)
	for _, a := range r.byID {
		if a.AdopterUserID == adopterUserID {
			out = append(out, a)
		}
	}
	sortRequestsByCreatedAsc(out)
	return out, nil
}

func (r *adoptionRepo) ListByPetIDs(ctx context.Context, petIDs []string) ([]adoptions.Request, error) {
	if len(petIDs) == 0 {
		return []adoptions.Request{}, nil
	}

	wanted := make(map[string]struct{}, len(petIDs))
	for _, id := range petIDs {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.Request, 0)
	for _, a := range r.byID {
		if _, ok := wanted[a.PetID]; ok {
			out = append(out, a)
		}
	}
	sortRequestsByCreatedAsc(out)
	return out, nil
}

func (r *adoptionRepo) ListAll(ctx context.Context) ([]adoptions.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.Request, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sortRequestsByCreatedAsc(out)
	return out, nil
}

func (r *adoptionRepo) UpdateStatusIf(ctx context.Context, id string, expected, next adoptions.Status, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return adoptions.ErrNotFound
	}
	if a.Status != expected {
		return adoptions.ErrConflict
	}

	a.Status = next
	a.UpdatedAt = now
	if next == adoptions.StatusApproved {
		t := now
		a.ApprovedAt = &t
	}
	r.byID[id] = a
	return nil
}

func sortRequestsByCreatedAsc(out []adoptions.Request) {
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
}
