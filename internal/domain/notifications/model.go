package notifications

import "time"

// Notification es una entrada pull-based: se crea como efecto de una
// transición del ledger y solo muta para marcar read. Nunca se borra acá.
type Notification struct {
	ID     string
	UserID string

	Message    string
	Link       string
	AdoptionID string

	Read      bool
	CreatedAt time.Time
}
