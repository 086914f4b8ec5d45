package adoptions

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-adoption-market/internal/domain/pets"
	"pet-adoption-market/internal/middleware"
	"pet-adoption-market/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/adoptions", func(ar chi.Router) {
		ar.Post("/", requestAdoptionHandler(svc))
		ar.Get("/", listAdoptionsHandler(svc))
		ar.Patch("/{adoptionID}", decideAdoptionHandler(svc))
	})
}

type requestAdoptionRequest struct {
	PetID string `json:"pet_id"`
}

type decideAdoptionRequest struct {
	Status string `json:"status"` // approved | rejected
}

type adoptionResponse struct {
	ID            string     `json:"id"`
	PetID         string     `json:"pet_id"`
	AdopterUserID string     `json:"adopter_user_id"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
}

func requestAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req requestAdoptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Request(r.Context(), req.PetID, Actor{
			UserID: claims.UserID,
			Admin:  claims.IsAdmin(),
		})
		if err != nil {
			switch err {
			case pets.ErrNotFound:
				metrics.ObserveAdoptionRequest("not_found")
				http.Error(w, "pet not found", http.StatusNotFound)
			case ErrPetUnavailable, ErrOwnPet:
				metrics.ObserveAdoptionRequest("invalid_state")
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrDuplicateRequest, ErrConflict, pets.ErrConflict:
				metrics.ObserveAdoptionRequest("conflict")
				http.Error(w, err.Error(), http.StatusConflict)
			case ErrInvalidInput:
				metrics.ObserveAdoptionRequest("invalid_input")
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				metrics.ObserveAdoptionRequest("error")
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		metrics.ObserveAdoptionRequest("created")
		writeJSON(w, http.StatusCreated, toAdoptionResponse(a))
	}
}

func listAdoptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListForActor(r.Context(), Actor{
			UserID: claims.UserID,
			Admin:  claims.IsAdmin(),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]adoptionResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAdoptionResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func decideAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req decideAdoptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Decide(r.Context(), chi.URLParam(r, "adoptionID"), Actor{
			UserID: claims.UserID,
			Admin:  claims.IsAdmin(),
		}, Status(strings.TrimSpace(strings.ToLower(req.Status))))
		if err != nil {
			switch err {
			case ErrNotFound, pets.ErrNotFound:
				http.Error(w, err.Error(), http.StatusNotFound)
			case ErrForbidden:
				http.Error(w, "not authorized", http.StatusForbidden)
			case ErrAlreadyDecided, ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrConflict:
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		metrics.ObserveAdoptionDecision(string(a.Status))
		writeJSON(w, http.StatusOK, toAdoptionResponse(a))
	}
}

func toAdoptionResponse(a Request) adoptionResponse {
	return adoptionResponse{
		ID:            a.ID,
		PetID:         a.PetID,
		AdopterUserID: a.AdopterUserID,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
		ApprovedAt:    a.ApprovedAt,
	}
}

// writeJSON duplicado a propósito por módulo (ver nota en pets/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
