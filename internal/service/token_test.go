package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/pokedex/internal/domain"
	"github.com/msomdec/pokedex/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

func newTestTokenService(t *testing.T) *service.TokenService {
	t.Helper()
	tokens, err := service.NewTokenService(testJWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return tokens
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	if _, err := service.NewTokenService("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	tokens := newTestTokenService(t)

	token, err := tokens.Issue(42, "ash@example.com", service.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != 42 || claims.Subject != "42" {
		t.Fatalf("expected subject 42, got %d / %q", claims.UserID, claims.Subject)
	}
	if claims.Email != "ash@example.com" {
		t.Fatalf("expected email ash@example.com, got %q", claims.Email)
	}
	if claims.Role != service.RoleUser {
		t.Fatalf("expected role %q, got %q", service.RoleUser, claims.Role)
	}
}

func TestTokenService_Verify_Rejects(t *testing.T) {
	tokens := newTestTokenService(t)

	valid, err := tokens.Issue(1, "a@example.com", service.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other, err := service.NewTokenService("a-completely-different-secret-value", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	foreign, err := other.Issue(1, "a@example.com", service.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"userId": 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-valid-jwt"},
		{"tampered signature", valid[:len(valid)-5] + "XXXXX"},
		{"wrong secret", foreign},
		{"alg none", unsigned},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tokens.Verify(tc.token)
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	clock := newFakeClock()
	tokens := newTestTokenService(t).WithClock(clock.Now)

	token, err := tokens.Issue(7, "old@example.com", service.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	clock.Advance(2 * time.Hour)

	if _, err := tokens.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}
