package jwtlocal

import (
	"context"
	"testing"
	"time"

	"pet-adoption-market/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerifier_ValidToken(t *testing.T) {
	v, err := New("super-secret")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	signed := signToken(t, "super-secret", jwt.MapClaims{
		"id":   "user-1",
		"role": auth.RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(context.Background(), signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("expected user-1, got %q", claims.UserID)
	}
	if !claims.IsAdmin() {
		t.Fatalf("expected admin claims")
	}
}

func TestVerifier_SubjectFallback(t *testing.T) {
	v, _ := New("super-secret")

	signed := signToken(t, "super-secret", jwt.MapClaims{
		"sub": "user-2",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(context.Background(), signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "user-2" {
		t.Fatalf("expected user-2, got %q", claims.UserID)
	}
	if claims.IsAdmin() {
		t.Fatalf("did not expect admin claims")
	}
}

func TestVerifier_WrongSecret(t *testing.T) {
	v, _ := New("super-secret")

	signed := signToken(t, "other-secret", jwt.MapClaims{
		"id":  "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifier_ExpiredToken(t *testing.T) {
	v, _ := New("super-secret")

	signed := signToken(t, "super-secret", jwt.MapClaims{
		"id":  "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifier_EmptyToken(t *testing.T) {
	v, _ := New("super-secret")

	if _, err := v.Verify(context.Background(), "   "); err != ErrTokenEmpty {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}
}

func TestVerifier_MissingUserID(t *testing.T) {
	v, _ := New("super-secret")

	signed := signToken(t, "super-secret", jwt.MapClaims{
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifier_RejectsNonHMAC(t *testing.T) {
	v, _ := New("super-secret")

	// Token "none" firmado: método no HMAC debe rechazarse.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": "user-1"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := v.Verify(context.Background(), signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNew_EmptySecret(t *testing.T) {
	if _, err := New(" "); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
