package adoptions

import "time"

// Status del request de adopción.
// @Enum pending, approved, rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsDecision reporta si el status es un valor aceptable al decidir.
func (s Status) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

// Request es la entrada del ledger de adopciones.
// PetID es inmutable tras la creación; ApprovedAt solo se estampa al aprobar.
type Request struct {
	ID            string
	PetID         string
	AdopterUserID string

	Status Status

	CreatedAt  time.Time // fecha del request
	UpdatedAt  time.Time
	ApprovedAt *time.Time
}

// Actor es la identidad autenticada que invoca una operación.
// Se pasa explícito en cada llamada; no hay "usuario actual" ambiente.
type Actor struct {
	UserID string
	Admin  bool
}
