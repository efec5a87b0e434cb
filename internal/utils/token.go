package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	jwtIssuer         = "catalog-api"
	minJWTSecretBytes = 32

	// DefaultTokenTTL is how long a login token stays valid.
	DefaultTokenTTL = 24 * time.Hour
)

var (
	ErrWeakSecret   = fmt.Errorf("JWT secret must be at least %d characters", minJWTSecretBytes)
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the token contract shared by login and the auth middleware.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 tokens with a single secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	raw := strings.TrimSpace(secret)
	if len(raw) < minJWTSecretBytes {
		return nil, ErrWeakSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(raw), ttl: ttl, now: time.Now}, nil
}

// TTL reports the lifetime of issued tokens.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// GenerateToken issues a token for the given user.
func (m *TokenManager) GenerateToken(userID, email string) (string, time.Time, error) {
	if !IsValidID(userID) {
		return "", time.Time{}, errors.New("invalid user ID")
	}

	now := m.now()
	expiresAt := now.Add(m.ttl)
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken verifies signature, expiry and claims. Every rejection wraps
// ErrInvalidToken; any other error is an internal fault.
func (m *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	if m == nil || len(m.secret) == 0 {
		return nil, errors.New("token manager is not configured")
	}
	if strings.TrimSpace(tokenString) == "" {
		return nil, fmt.Errorf("%w: token is empty", ErrInvalidToken)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method == nil || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if !IsValidID(claims.UserID) {
		return nil, fmt.Errorf("%w: invalid token user", ErrInvalidToken)
	}

	if claims.Issuer != jwtIssuer {
		return nil, fmt.Errorf("%w: invalid token issuer", ErrInvalidToken)
	}

	if claims.Subject != claims.UserID {
		return nil, fmt.Errorf("%w: invalid token subject", ErrInvalidToken)
	}

	return claims, nil
}
