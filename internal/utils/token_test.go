package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "catalog_test_jwt_secret_key_1234567890"

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return m
}

func TestNewTokenManagerRejectsShortSecret(t *testing.T) {
	if _, err := NewTokenManager("short", time.Hour); !errors.Is(err, ErrWeakSecret) {
		t.Fatalf("expected ErrWeakSecret, got %v", err)
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := newTestManager(t)
	userID := NewID()

	token, expiresAt, err := m.GenerateToken(userID, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expected expiry in the future, got %v", expiresAt)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != userID || claims.Email != "user@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	other, err := NewTokenManager("another_secret_that_is_long_enough_123", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	token, _, err := other.GenerateToken(NewID(), "a@b.c")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := newTestManager(t).ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	m := newTestManager(t)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := m.GenerateToken(NewID(), "a@b.c")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	m.now = time.Now
	if _, err := m.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateTokenRejectsMissingUserClaim(t *testing.T) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    jwtIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	if _, err := newTestManager(t).ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateTokenEmpty(t *testing.T) {
	if _, err := newTestManager(t).ValidateToken("  "); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
