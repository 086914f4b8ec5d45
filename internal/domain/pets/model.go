package pets

import "time"

// Type define los tipos de mascota soportados.
// @Enum dog, cat, bird, other
type Type string

const (
	TypeDog   Type = "dog"
	TypeCat   Type = "cat"
	TypeBird  Type = "bird"
	TypeOther Type = "other"
)

// Status es el estado de adopción del listing.
// Solo el workflow de adopciones lo muta (via TransitionStatus);
// ningún handler escribe status directamente.
// @Enum available, pending, adopted
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusAdopted   Status = "adopted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusAdopted:
		return true
	}
	return false
}

// Pet representa un listing publicado para adopción.
type Pet struct {
	ID          string
	OwnerUserID string

	Name        string
	Type        Type
	Breed       string
	Age         int
	Description string

	// ImageURL puede venir del media store (location) o quedar vacía si el
	// objeto es privado y se resuelve por key al servir.
	ImageURL string
	ImageKey string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
