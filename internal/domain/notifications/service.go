package notifications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("notification not found")
	ErrForbidden    = errors.New("not authorized")
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
	UserID     string
	Message    string
	Link       string
	AdoptionID string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Notification, error) {
	if strings.TrimSpace(in.UserID) == "" || strings.TrimSpace(in.Message) == "" {
		return Notification{}, ErrInvalidInput
	}

	n := Notification{
		ID:         uuid.NewString(),
		UserID:     strings.TrimSpace(in.UserID),
		Message:    strings.TrimSpace(in.Message),
		Link:       strings.TrimSpace(in.Link),
		AdoptionID: strings.TrimSpace(in.AdoptionID),
		Read:       false,
		CreatedAt:  s.now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return Notification{}, err
	}
	return n, nil
}

// Notify implementa adoptions.Notifier. El caller decide qué hacer con el
// error (el workflow lo loguea y sigue).
func (s *Service) Notify(ctx context.Context, userID, message, link, adoptionID string) error {
	_, err := s.Create(ctx, CreateInput{
		UserID:     userID,
		Message:    message,
		Link:       link,
		AdoptionID: adoptionID,
	})
	return err
}

// ListFor devuelve las notificaciones del usuario, newest-first.
func (s *Service) ListFor(ctx context.Context, userID string) ([]Notification, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

// MarkRead marca como leída. Idempotente: re-marcar una ya leída no es error.
func (s *Service) MarkRead(ctx context.Context, id, actorUserID string) (Notification, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(actorUserID) == "" {
		return Notification{}, ErrInvalidInput
	}

	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Notification{}, err
	}
	if n.UserID != actorUserID {
		return Notification{}, ErrForbidden
	}
	if n.Read {
		return n, nil
	}

	n.Read = true
	if err := s.repo.Update(ctx, n); err != nil {
		return Notification{}, err
	}
	return n, nil
}
