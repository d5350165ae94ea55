package httpmw

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cwrk-planet/conference-service/internal/auth"
	"github.com/cwrk-planet/conference-service/internal/domain"
)

func newChain(signer *auth.TokenSigner) (http.Handler, *domain.User) {
	var seen domain.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(signer)(next), &seen
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	signer := auth.NewTokenSigner("secret", "conference-service", time.Hour)
	token, err := signer.Sign("u1", "Alice", time.Now())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	h, seen := newChain(signer)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seen.ID != "u1" || seen.DisplayName != "Alice" {
		t.Fatalf("ctx user = %+v", seen)
	}
}

func TestAuthMiddleware_NoTokenPassesThrough(t *testing.T) {
	signer := auth.NewTokenSigner("secret", "conference-service", time.Hour)

	h, seen := newChain(signer)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seen.ID != "" {
		t.Fatalf("ctx user = %+v, want empty", seen)
	}
}

func TestAuthMiddleware_InvalidTokenEnvelope(t *testing.T) {
	signer := auth.NewTokenSigner("secret", "conference-service", time.Hour)

	h, _ := newChain(signer)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content-type = %q", ct)
	}
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Message != "invalid token" {
		t.Fatalf("error message = %q", body.Error.Message)
	}
}

func TestAuthMiddleware_TokenFromQuery(t *testing.T) {
	signer := auth.NewTokenSigner("secret", "conference-service", time.Hour)
	token, err := signer.Sign("u2", "Bob", time.Now())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	h, seen := newChain(signer)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?access_token="+token, nil))

	if seen.ID != "u2" {
		t.Fatalf("ctx user = %+v", seen)
	}
}
