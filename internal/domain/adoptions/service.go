package adoptions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"pet-adoption-market/internal/domain/pets"
	"pet-adoption-market/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("adoption request not found")
	ErrForbidden    = errors.New("not authorized")

	// Estados ilegales del workflow
	ErrPetUnavailable = errors.New("pet is not available for adoption")
	ErrAlreadyDecided = errors.New("adoption request already decided")
	ErrOwnPet         = errors.New("cannot request adoption of your own pet")

	// Carreras perdidas
	ErrConflict         = errors.New("adoption request conflict")
	ErrDuplicateRequest = errors.New("duplicate pending request for this pet")
)

// Notifier es lo que el workflow necesita del dispatcher de notificaciones.
// La entrega es best-effort: un error acá nunca revierte la transición.
type Notifier interface {
	Notify(ctx context.Context, userID, message, link, adoptionID string) error
}

// Service orquesta el ciclo de vida de adopción: es el único escritor
// de pet.Status y de Request.Status, y el que dispara notificaciones.
type Service struct {
	repo     Repository
	pets     *pets.Service
	notifier Notifier
	log      logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, petsSvc *pets.Service, notifier Notifier, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		pets:     petsSvc,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Request crea un pedido de adopción: transición Idle -> RequestPending.
//
// El CAS sobre pet.Status (available -> pending) serializa requests
// concurrentes sobre el mismo pet: exactamente uno gana, el resto sale
// con ErrPetUnavailable o pets.ErrConflict.
func (s *Service) Request(ctx context.Context, petID string, actor Actor) (Request, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" || strings.TrimSpace(actor.UserID) == "" {
		return Request{}, ErrInvalidInput
	}

	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return Request{}, err
	}
	if p.OwnerUserID == actor.UserID {
		return Request{}, ErrOwnPet
	}
	if p.Status != pets.StatusAvailable {
		return Request{}, ErrPetUnavailable
	}

	if _, err := s.repo.FindPendingFor(ctx, petID, actor.UserID); err == nil {
		return Request{}, ErrDuplicateRequest
	} else if !errors.Is(err, ErrNotFound) {
		return Request{}, err
	}

	// Primero el pet: su status pending debe ser visible antes de que el
	// request exista para lecturas concurrentes.
	if err := s.pets.TransitionStatus(ctx, petID, pets.StatusAvailable, pets.StatusPending); err != nil {
		return Request{}, err
	}

	now := s.now()
	a := Request{
		ID:            uuid.NewString(),
		PetID:         petID,
		AdopterUserID: actor.UserID,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		// Compensación: devolver el pet a available para no dejarlo
		// colgado en pending sin request activo.
		if rbErr := s.pets.TransitionStatus(ctx, petID, pets.StatusPending, pets.StatusAvailable); rbErr != nil {
			s.logError("adoption request rollback failed", map[string]any{
				"pet_id": petID,
				"error":  rbErr.Error(),
			})
		}
		return Request{}, err
	}

	s.dispatch(ctx, p.OwnerUserID,
		fmt.Sprintf("New adoption request for your pet %s", p.Name),
		"/pets/"+p.ID,
		a.ID,
	)

	return a, nil
}

// Decide resuelve un request pending: RequestPending -> Approved|Rejected.
// Solo el owner del pet o un admin pueden decidir.
func (s *Service) Decide(ctx context.Context, requestID string, actor Actor, decision Status) (Request, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" || strings.TrimSpace(actor.UserID) == "" {
		return Request{}, ErrInvalidInput
	}
	if !decision.IsDecision() {
		return Request{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return Request{}, err
	}

	p, err := s.pets.GetByID(ctx, a.PetID)
	if err != nil {
		return Request{}, err
	}

	if p.OwnerUserID != actor.UserID && !actor.Admin {
		return Request{}, ErrForbidden
	}

	if a.Status != StatusPending {
		return Request{}, ErrAlreadyDecided
	}

	now := s.now()

	// El CAS sobre el request es el punto de serialización entre
	// decisiones concurrentes: solo una pasa de pending a decidido.
	if err := s.repo.UpdateStatusIf(ctx, a.ID, StatusPending, decision, now); err != nil {
		return Request{}, err
	}

	next := pets.StatusAvailable
	if decision == StatusApproved {
		next = pets.StatusAdopted
	}
	if err := s.pets.TransitionStatus(ctx, a.PetID, pets.StatusPending, next); err != nil {
		// El request ya quedó decidido; esto solo puede pasar si alguien
		// tocó el pet por fuera del workflow. Queda logueado para operar.
		s.logError("pet status transition failed after decision", map[string]any{
			"pet_id":     a.PetID,
			"request_id": a.ID,
			"decision":   string(decision),
			"error":      err.Error(),
		})
	}

	a.Status = decision
	a.UpdatedAt = now
	if decision == StatusApproved {
		a.ApprovedAt = &now
	}

	verdict := "rejected"
	if decision == StatusApproved {
		verdict = "approved"
	}
	s.dispatch(ctx, a.AdopterUserID,
		fmt.Sprintf("Your adoption request for pet %s was %s.", p.Name, verdict),
		"/adoptions/"+a.ID,
		a.ID,
	)

	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Request{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// ListForActor devuelve los requests en los que el actor es parte:
// los que hizo como adopter más los que apuntan a pets suyos.
// Un admin ve todos.
func (s *Service) ListForActor(ctx context.Context, actor Actor) ([]Request, error) {
	if strings.TrimSpace(actor.UserID) == "" {
		return nil, ErrInvalidInput
	}

	if actor.Admin {
		items, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		sortByCreatedDesc(items)
		return items, nil
	}

	mine, err := s.repo.ListByAdopter(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	owned, err := s.pets.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	petIDs := make([]string, 0, len(owned))
	for _, p := range owned {
		petIDs = append(petIDs, p.ID)
	}

	incoming, err := s.repo.ListByPetIDs(ctx, petIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(mine)+len(incoming))
	out := make([]Request, 0, len(mine)+len(incoming))
	for _, a := range append(mine, incoming...) {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}

	sortByCreatedDesc(out)
	return out, nil
}

func sortByCreatedDesc(items []Request) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

// dispatch crea la notificación y se traga el error: la transición
// ya committeada no depende de la durabilidad de la notificación.
func (s *Service) dispatch(ctx context.Context, userID, message, link, adoptionID string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, message, link, adoptionID); err != nil {
		s.logError("notification dispatch failed", map[string]any{
			"user_id":     userID,
			"adoption_id": adoptionID,
			"error":       err.Error(),
		})
	}
}

func (s *Service) logError(msg string, fields map[string]any) {
	if s.log == nil {
		return
	}
	s.log.Error(msg, fields)
}
