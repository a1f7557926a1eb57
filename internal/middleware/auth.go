// Package middleware provides authentication, logging, tracing and rate limiting for the HTTP layer.
package middleware

import (
	"context"
	"strings"

	"campushub/internal/models"

	"github.com/gofiber/fiber/v2"
)

const identityLocal = "identity"

var (
	errMissingToken = models.NewUnauthorizedError("No token provided")
	errMissingEmail = models.NewUnauthorizedError("Invalid token")
)

// TokenVerifier resolves a bearer token into an identity.
type TokenVerifier interface {
	Verify(token string) (models.Identity, error)
}

// Authenticate resolves an Authorization header value into an identity.
// It is a pure function of the header and the verifier's configuration.
func Authenticate(header string, verifier TokenVerifier) (models.Identity, error) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return models.Identity{}, errMissingToken
	}

	identity, err := verifier.Verify(token)
	if err != nil {
		return models.Identity{}, err
	}
	if identity.Email == "" {
		return models.Identity{}, errMissingEmail
	}
	identity.Email = models.NormalizeEmail(identity.Email)
	return identity, nil
}

// AuthRequired rejects requests without a valid bearer token and attaches the identity otherwise.
func AuthRequired(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := Authenticate(c.Get(fiber.HeaderAuthorization), verifier)
		if err != nil {
			return models.RespondWithError(c, err)
		}

		c.Locals(identityLocal, identity)
		c.SetUserContext(context.WithValue(c.UserContext(), UserEmailKey, identity.Email))
		return c.Next()
	}
}

// IdentityFrom returns the identity attached by AuthRequired.
func IdentityFrom(c *fiber.Ctx) (models.Identity, bool) {
	identity, ok := c.Locals(identityLocal).(models.Identity)
	return identity, ok
}
