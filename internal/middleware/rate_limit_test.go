package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"
)

func TestRateLimit_BlocksAfterBurst(t *testing.T) {
	handler := RateLimit(1, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(remoteAddr string) int {
		req := httptest.NewRequest("GET", "/pets", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	// Burst de 2 pasa, el tercero se corta.
	if st := do("10.0.0.1:1234"); st != http.StatusOK {
		t.Fatalf("request 1: expected 200, got %d", st)
	}
	if st := do("10.0.0.1:1234"); st != http.StatusOK {
		t.Fatalf("request 2: expected 200, got %d", st)
	}
	if st := do("10.0.0.1:1234"); st != http.StatusTooManyRequests {
		t.Fatalf("request 3: expected 429, got %d", st)
	}

	// Otra IP tiene su propio bucket.
	if st := do("10.0.0.2:1234"); st != http.StatusOK {
		t.Fatalf("other ip: expected 200, got %d", st)
	}
}

func TestRateLimit_DoesNotLeakGoroutines(t *testing.T) {
	before := runtime.NumGoroutine()

	// Armar y usar muchos limiters no debe dejar goroutines de fondo.
	for i := 0; i < 50; i++ {
		handler := RateLimit(10, 5)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		req := httptest.NewRequest("GET", "/pets", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("limiter %d: expected 200, got %d", i, rec.Code)
		}
	}

	time.Sleep(50 * time.Millisecond)
	after := runtime.NumGoroutine()
	if after > before+3 {
		t.Fatalf("expected no background goroutines, before=%d after=%d", before, after)
	}
}

func TestRateLimit_DisabledWhenZero(t *testing.T) {
	handler := RateLimit(0, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest("GET", "/pets", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
}
