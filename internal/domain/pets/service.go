package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	ErrConflict     = errors.New("pet status conflict")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	Type        string
	Breed       string
	Age         int
	Description string
	ImageURL    string
	ImageKey    string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	t := Type(strings.TrimSpace(strings.ToLower(in.Type)))
	switch t {
	case TypeDog, TypeCat, TypeBird, TypeOther:
	default:
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Breed) == "" || strings.TrimSpace(in.Description) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Type:        t,
		Breed:       strings.TrimSpace(in.Breed),
		Age:         in.Age,
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		ImageKey:    strings.TrimSpace(in.ImageKey),
		Status:      StatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// ListAvailable devuelve listings en status available para browse.
// Si excludeOwnerUserID no es vacío, omite los pets de ese usuario.
func (s *Service) ListAvailable(ctx context.Context, excludeOwnerUserID string) ([]Pet, error) {
	return s.repo.ListByStatus(ctx, StatusAvailable, strings.TrimSpace(excludeOwnerUserID))
}

// ListMine devuelve los pets del owner, excluyendo los ya adoptados.
func (s *Service) ListMine(ctx context.Context, ownerUserID string) ([]Pet, error) {
	items, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	out := make([]Pet, 0, len(items))
	for _, p := range items {
		if p.Status == StatusAdopted {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// ListByOwner devuelve todos los pets del owner (incluye adoptados).
func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// UpdateProfileInput es el allow-list de campos editables por PATCH.
// Status queda afuera a propósito: solo muta via TransitionStatus.
type UpdateProfileInput struct {
	Name        *string
	Breed       *string
	Age         *int
	Description *string
}

func (s *Service) UpdateProfile(ctx context.Context, petID, actorUserID string, in UpdateProfileInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != actorUserID {
		return Pet{}, ErrForbidden
	}

	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = v
	}
	if in.Breed != nil {
		v := strings.TrimSpace(*in.Breed)
		if v == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Breed = v
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Age = *in.Age
	}
	if in.Description != nil {
		v := strings.TrimSpace(*in.Description)
		if v == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Description = v
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// TransitionStatus es el único punto de escritura de status.
// Compare-and-swap sobre el status esperado: una carrera perdida
// sale como ErrConflict, nunca como sobreescritura silenciosa.
func (s *Service) TransitionStatus(ctx context.Context, petID string, expected, next Status) error {
	if !expected.Valid() || !next.Valid() {
		return ErrInvalidInput
	}
	return s.repo.UpdateStatusIf(ctx, petID, expected, next)
}

func (s *Service) Delete(ctx context.Context, petID, actorUserID string, admin bool) error {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return err
	}
	if p.OwnerUserID != actorUserID && !admin {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, petID)
}

// OwnerOf expone el ownerUserID de un pet.
// Evita que otros módulos carguen el modelo completo solo para autorizar.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}
