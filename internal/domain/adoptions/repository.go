package adoptions

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a Request) error
	GetByID(ctx context.Context, id string) (Request, error)

	// FindPendingFor devuelve el request pending para (pet, adopter),
	// o ErrNotFound si no hay ninguno.
	FindPendingFor(ctx context.Context, petID, adopterUserID string) (Request, error)

	ListByAdopter(ctx context.Context, adopterUserID string) ([]Request, error)
	ListByPetIDs(ctx context.Context, petIDs []string) ([]Request, error)
	ListAll(ctx context.Context) ([]Request, error)

	// UpdateStatusIf es un compare-and-swap sobre el status: aplica next
	// solo si el status actual es expected; estampa updated_at=now y,
	// si next es approved, approved_at=now. ErrNotFound si el request no
	// existe, ErrConflict si el status actual ya no es expected.
	UpdateStatusIf(ctx context.Context, id string, expected, next Status, now time.Time) error
}
