package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "pet-adoption-market/internal/adapters/storage/memory"
	pg "pet-adoption-market/internal/adapters/storage/postgres"
	"pet-adoption-market/internal/domain/adoptions"
	"pet-adoption-market/internal/domain/notifications"
	"pet-adoption-market/internal/domain/pets"
	"pet-adoption-market/internal/middleware"
	"pet-adoption-market/internal/platform/logger"
	"pet-adoption-market/internal/platform/metrics"
	"pet-adoption-market/internal/ports/auth"
	"pet-adoption-market/internal/ports/media"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	MediaStore   media.Store       // puede ser nil (sin upload de imágenes)
	Logger       logger.Logger     // puede ser nil

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Requests por segundo por cliente; <= 0 desactiva.
	RateLimitRPS float64
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Instrument)
	r.Use(middleware.RateLimit(opts.RateLimitRPS, 0))
	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	var (
		petRepo      pets.Repository
		adoptionRepo adoptions.Repository
		notifRepo    notifications.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		adoptionRepo = pg.NewAdoptionsRepo(db)
		notifRepo = pg.NewNotificationsRepo(db)
	} else {
		petRepo = mem.NewPetRepo()
		adoptionRepo = mem.NewAdoptionRepo()
		notifRepo = mem.NewNotificationRepo()
	}

	// Services por módulo. El workflow de adopciones es el único escritor
	// de status: registry y ledger no se mutan por fuera de él.
	petsSvc := pets.NewService(petRepo)
	notifSvc := notifications.NewService(notifRepo)
	adoptionsSvc := adoptions.NewService(adoptionRepo, petsSvc, notifSvc, opts.Logger)

	pets.RegisterRoutes(r, petsSvc, opts.MediaStore)
	adoptions.RegisterRoutes(r, adoptionsSvc)
	notifications.RegisterRoutes(r, notifSvc, adoptionsSvc, petsSvc)

	return r
}
