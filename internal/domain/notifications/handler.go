package notifications

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-adoption-market/internal/domain/adoptions"
	"pet-adoption-market/internal/domain/pets"
	"pet-adoption-market/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, adoptionsSvc *adoptions.Service, petsSvc *pets.Service) {
	r.Route("/notifications", func(nr chi.Router) {
		nr.Get("/", listNotificationsHandler(svc, adoptionsSvc, petsSvc))
		nr.Patch("/{notificationID}/read", markReadHandler(svc))
	})
}

type notificationResponse struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	Link       string    `json:"link,omitempty"`
	AdoptionID string    `json:"adoption_id,omitempty"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`

	// Resumen del request referenciado, poblado best-effort para la UI.
	Adoption *adoptionSummary `json:"adoption,omitempty"`
}

type adoptionSummary struct {
	ID            string      `json:"id"`
	Status        string      `json:"status"`
	AdopterUserID string      `json:"adopter_user_id"`
	Pet           *petSummary `json:"pet,omitempty"`
}

type petSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func listNotificationsHandler(svc *Service, adoptionsSvc *adoptions.Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListFor(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]notificationResponse, 0, len(items))
		for _, n := range items {
			resp := notificationResponse{
				ID:         n.ID,
				Message:    n.Message,
				Link:       n.Link,
				AdoptionID: n.AdoptionID,
				Read:       n.Read,
				CreatedAt:  n.CreatedAt,
			}

			// Población best-effort: una notificación con request o pet
			// ya borrados se devuelve igual, solo sin el resumen.
			if n.AdoptionID != "" {
				if a, err := adoptionsSvc.GetByID(r.Context(), n.AdoptionID); err == nil {
					summary := &adoptionSummary{
						ID:            a.ID,
						Status:        string(a.Status),
						AdopterUserID: a.AdopterUserID,
					}
					if p, err := petsSvc.GetByID(r.Context(), a.PetID); err == nil {
						summary.Pet = &petSummary{
							ID:     p.ID,
							Name:   p.Name,
							Status: string(p.Status),
						}
					}
					resp.Adoption = summary
				}
			}

			out = append(out, resp)
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func markReadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		n, err := svc.MarkRead(r.Context(), chi.URLParam(r, "notificationID"), claims.UserID)
		if err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "notification not found", http.StatusNotFound)
			case ErrForbidden:
				http.Error(w, "not authorized", http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, notificationResponse{
			ID:         n.ID,
			Message:    n.Message,
			Link:       n.Link,
			AdoptionID: n.AdoptionID,
			Read:       n.Read,
			CreatedAt:  n.CreatedAt,
		})
	}
}

// writeJSON duplicado a propósito por módulo (ver nota en pets/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
