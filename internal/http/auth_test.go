package http

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"fincare-backend/internal/config"
	"fincare-backend/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	s := &Server{cfg: &config.Config{JWTSecret: "test-secret", TokenTTLHours: 24}}
	user := &models.User{UUID: "63d0a9c2-2c1e-4a8c-b6f0-1c9d5e2b7a01"}

	signed, err := s.generateToken(user)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("parsing token: %v", err)
	}
	if !token.Valid {
		t.Fatal("expected a valid token")
	}
	if claims.UserUUID != user.UUID {
		t.Errorf("expected uuid %s, got %s", user.UUID, claims.UserUUID)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		t.Error("expected expiry after issue time")
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	s := &Server{cfg: &config.Config{JWTSecret: "test-secret", TokenTTLHours: 24}}
	signed, err := s.generateToken(&models.User{UUID: "abc"})
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	_, err = jwt.ParseWithClaims(signed, &TokenClaims{}, func(tok *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	if err == nil {
		t.Fatal("expected verification to fail with the wrong secret")
	}
}
