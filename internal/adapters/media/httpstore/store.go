package httpstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-adoption-market/internal/ports/media"
)

var (
	ErrNotConfigured = errors.New("media store client not configured")
	ErrUpstream      = errors.New("media store upstream error")
)

// Config del cliente del media store.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Store sube archivos al media store por HTTP y devuelve url + key.
// El upload es un POST crudo (no JSON) porque el body es el archivo.
type Store struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(cfg Config) (*Store, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, ErrNotConfigured
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Store{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type uploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

func (s *Store) Store(ctx context.Context, filename, contentType string, r io.Reader) (media.Object, error) {
	if s == nil || s.httpClient == nil {
		return media.Object{}, ErrNotConfigured
	}

	uploadURL := s.baseURL + "/v1/objects?filename=" + url.QueryEscape(strings.TrimSpace(filename))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, r)
	if err != nil {
		return media.Object{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if strings.TrimSpace(contentType) != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s.apiKey != "" {
		req.Header.Set("X-Api-Key", s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return media.Object{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return media.Object{}, fmt.Errorf("%w: status=%d body=%s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out uploadResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return media.Object{}, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	if strings.TrimSpace(out.Key) == "" {
		return media.Object{}, fmt.Errorf("%w: response missing object key", ErrUpstream)
	}

	return media.Object{URL: out.URL, Key: out.Key}, nil
}
