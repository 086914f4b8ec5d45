package memory

import (
	"context"
	"testing"
	"time"

	"pet-adoption-market/internal/domain/pets"
)

func seedPet(t *testing.T, repo pets.Repository, p pets.Pet) {
	t.Helper()
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("seed pet: %v", err)
	}
}

func TestPetRepo_Update_PreservesWorkflowFields(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()
	created := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	seedPet(t, repo, pets.Pet{
		ID:          "pet-1",
		OwnerUserID: "owner-1",
		Name:        "Milo",
		Type:        pets.TypeDog,
		Breed:       "mixed",
		Age:         3,
		Description: "friendly dog",
		Status:      pets.StatusAvailable,
		CreatedAt:   created,
		UpdatedAt:   created,
	})

	// El workflow mueve el pet a pending después de que alguien
	// tomó un snapshot para editar el perfil.
	if err := repo.UpdateStatusIf(ctx, "pet-1", pets.StatusAvailable, pets.StatusPending); err != nil {
		t.Fatalf("transition: %v", err)
	}

	// Snapshot viejo: trae status available y hasta campos ajenos tocados.
	stale := pets.Pet{
		ID:          "pet-1",
		OwnerUserID: "intruder",
		Name:        "Milo Renamed",
		Type:        pets.TypeDog,
		Breed:       "mixed",
		Age:         4,
		Description: "friendly dog",
		Status:      pets.StatusAvailable,
		CreatedAt:   created.Add(time.Hour),
		UpdatedAt:   created.Add(time.Hour),
	}
	if err := repo.Update(ctx, stale); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, "pet-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != pets.StatusPending {
		t.Fatalf("expected status pending preserved, got %s", got.Status)
	}
	if got.OwnerUserID != "owner-1" {
		t.Fatalf("expected owner preserved, got %s", got.OwnerUserID)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("expected created_at preserved, got %v", got.CreatedAt)
	}
	if got.Name != "Milo Renamed" || got.Age != 4 {
		t.Fatalf("expected profile fields applied, got %+v", got)
	}
}

func TestPetRepo_Update_NotFound(t *testing.T) {
	repo := NewPetRepo()

	err := repo.Update(context.Background(), pets.Pet{ID: "pet-missing", Name: "Ghost"})
	if err != pets.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// transitioningRepo mete una transición de workflow entre el read y el
// write de UpdateProfile, simulando el peor interleaving posible.
type transitioningRepo struct {
	pets.Repository
	transitioned bool
}

func (r *transitioningRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	p, err := r.Repository.GetByID(ctx, id)
	if err == nil && !r.transitioned {
		r.transitioned = true
		if terr := r.Repository.UpdateStatusIf(ctx, id, pets.StatusAvailable, pets.StatusPending); terr != nil {
			return pets.Pet{}, terr
		}
	}
	return p, err
}

func TestUpdateProfile_DoesNotClobberConcurrentTransition(t *testing.T) {
	inner := NewPetRepo()
	created := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	seedPet(t, inner, pets.Pet{
		ID:          "pet-1",
		OwnerUserID: "owner-1",
		Name:        "Luna",
		Type:        pets.TypeCat,
		Breed:       "siamese",
		Age:         2,
		Description: "calm cat",
		Status:      pets.StatusAvailable,
		CreatedAt:   created,
		UpdatedAt:   created,
	})

	svc := pets.NewService(&transitioningRepo{Repository: inner})

	name := "Luna Updated"
	updated, err := svc.UpdateProfile(context.Background(), "pet-1", "owner-1", pets.UpdateProfileInput{Name: &name})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Luna Updated" {
		t.Fatalf("expected renamed pet, got %q", updated.Name)
	}

	got, err := inner.GetByID(context.Background(), "pet-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != pets.StatusPending {
		t.Fatalf("expected workflow status pending to survive profile update, got %s", got.Status)
	}
	if got.Name != "Luna Updated" {
		t.Fatalf("expected profile update applied, got %q", got.Name)
	}
}
