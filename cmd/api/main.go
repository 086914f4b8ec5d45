package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"pet-adoption-market/internal/adapters/auth/jwtlocal"
	authremote "pet-adoption-market/internal/adapters/auth/remote"
	"pet-adoption-market/internal/adapters/media/httpstore"
	"pet-adoption-market/internal/platform/logger"
	"pet-adoption-market/internal/platform/metrics"
	"pet-adoption-market/internal/ports/auth"
	"pet-adoption-market/internal/ports/media"
	"pet-adoption-market/internal/router"
)

func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	metrics.Init()

	verifier := buildVerifier(log)
	mediaStore := buildMediaStore(log)

	rps := 0.0
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			rps = parsed
		}
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		MediaStore:   mediaStore,
		Logger:       log,
		RateLimitRPS: rps,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

// buildVerifier elige el verifier por env:
// - AUTH_JWT_SECRET => verificación local HS256
// - AUTH_BASE_URL   => auth service remoto
// - nada            => modo dev (X-Debug-User-ID / X-Debug-Role)
func buildVerifier(log logger.Logger) auth.AuthVerifier {
	if secret := os.Getenv("AUTH_JWT_SECRET"); secret != "" {
		v, err := jwtlocal.New(secret)
		if err != nil {
			log.Error("jwt verifier init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		return v
	}

	if baseURL := os.Getenv("AUTH_BASE_URL"); baseURL != "" {
		v, err := authremote.New(authremote.Config{
			BaseURL: baseURL,
			APIKey:  os.Getenv("AUTH_API_KEY"),
		})
		if err != nil {
			log.Error("remote auth verifier init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		return v
	}

	log.Warn("no auth verifier configured, running in dev mode", nil)
	return nil
}

func buildMediaStore(log logger.Logger) media.Store {
	baseURL := os.Getenv("MEDIA_BASE_URL")
	if baseURL == "" {
		return nil
	}

	s, err := httpstore.New(httpstore.Config{
		BaseURL: baseURL,
		APIKey:  os.Getenv("MEDIA_API_KEY"),
	})
	if err != nil {
		log.Error("media store init failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	return s
}
