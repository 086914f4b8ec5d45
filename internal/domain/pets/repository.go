package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)

	// ListByStatus devuelve pets con el status dado; si excludeOwnerUserID
	// no es vacío, filtra además los del owner. Orden estable por created_at.
	ListByStatus(ctx context.Context, status Status, excludeOwnerUserID string) ([]Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)

	Update(ctx context.Context, p Pet) error

	// UpdateStatusIf es un compare-and-swap: aplica next solo si el status
	// actual es expected. ErrNotFound si el pet no existe, ErrConflict si
	// el status actual ya no es expected (carrera perdida).
	UpdateStatusIf(ctx context.Context, id string, expected, next Status) error

	Delete(ctx context.Context, id string) error
}
