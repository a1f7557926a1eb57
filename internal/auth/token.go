// Package auth issues and verifies bearer tokens and hashes passwords.
package auth

import (
	"errors"
	"time"

	"campushub/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "campushub-api"

// DefaultTokenTTL is the lifetime of an access token. There is no refresh.
const DefaultTokenTTL = 7 * 24 * time.Hour

var (
	// ErrMisconfigured is returned by every token operation when no signing secret is configured.
	ErrMisconfigured = models.NewMisconfigurationError("Server misconfiguration: JWT_SECRET not set")
	// ErrTokenInvalid covers malformed, tampered and wrongly signed tokens.
	ErrTokenInvalid = models.NewUnauthorizedError("Invalid token")
	// ErrTokenExpired is returned once a token is past its expiry.
	ErrTokenExpired = models.NewUnauthorizedError("Token expired")
)

// Claims is the signed token payload.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 access tokens with a secret fixed at construction.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a token service. An empty secret yields a service whose every call
// fails with ErrMisconfigured.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source. Used by tests to move past expiry.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Ready reports ErrMisconfigured when no secret is configured.
func (s *TokenService) Ready() error {
	if len(s.secret) == 0 {
		return ErrMisconfigured
	}
	return nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for identity that expires TTL from now.
func (s *TokenService) Issue(identity models.Identity) (string, error) {
	if err := s.Ready(); err != nil {
		return "", err
	}

	now := s.now()
	claims := Claims{
		ID:    identity.ID,
		Email: identity.Email,
		Name:  identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return signed, nil
}

// Verify checks signature, issuer and expiry and returns the embedded identity.
func (s *TokenService) Verify(tokenString string) (models.Identity, error) {
	if err := s.Ready(); err != nil {
		return models.Identity{}, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, ErrTokenExpired
		}
		return models.Identity{}, ErrTokenInvalid
	}
	if !token.Valid {
		return models.Identity{}, ErrTokenInvalid
	}

	return models.Identity{ID: claims.ID, Email: claims.Email, Name: claims.Name}, nil
}
