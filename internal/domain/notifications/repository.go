package notifications

import "context"

type Repository interface {
	Create(ctx context.Context, n Notification) error
	GetByID(ctx context.Context, id string) (Notification, error)

	// ListByUser devuelve las notificaciones del usuario, newest-first.
	ListByUser(ctx context.Context, userID string) ([]Notification, error)

	Update(ctx context.Context, n Notification) error
}
