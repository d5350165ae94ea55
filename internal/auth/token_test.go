package auth

import (
	"testing"
	"time"
)

func TestSignAndParse(t *testing.T) {
	s := NewTokenSigner("secret", "conference-service", time.Hour)

	token, err := s.Sign("u1", "Alice", time.Now())
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	user, err := s.ParseAndValidate(token)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}
	if user.ID != "u1" || user.DisplayName != "Alice" {
		t.Fatalf("user = %+v", user)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	good := NewTokenSigner("secret", "conference-service", time.Hour)
	bad := NewTokenSigner("other", "conference-service", time.Hour)

	token, err := good.Sign("u1", "Alice", time.Now())
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := bad.ParseAndValidate(token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParse_Expired(t *testing.T) {
	s := NewTokenSigner("secret", "conference-service", time.Hour)

	token, err := s.Sign("u1", "Alice", time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := s.ParseAndValidate(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParse_WrongIssuer(t *testing.T) {
	other := NewTokenSigner("secret", "someone-else", time.Hour)
	s := NewTokenSigner("secret", "conference-service", time.Hour)

	token, err := other.Sign("u1", "Alice", time.Now())
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := s.ParseAndValidate(token); err == nil {
		t.Fatal("expected error for wrong issuer")
	}
}

func TestParse_EmptyDisplayName(t *testing.T) {
	s := NewTokenSigner("secret", "conference-service", time.Hour)

	token, err := s.Sign("u1", "", time.Now())
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	user, err := s.ParseAndValidate(token)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}
	// фолбэк на Anonymous делает сервис, здесь пусто
	if user.DisplayName != "" {
		t.Fatalf("display name = %q, want empty", user.DisplayName)
	}
}
