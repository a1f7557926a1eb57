package server

import (
	"log/slog"

	"campushub/internal/middleware"
	"campushub/internal/models"

	"github.com/gofiber/fiber/v2"
)

var (
	errInvalidBody      = models.NewValidationError("Invalid request body")
	errNotAuthenticated = models.NewUnauthorizedError("No token provided")
)

// SuccessResponse is returned by endpoints that only acknowledge an action.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// parseBody decodes the JSON request body into dest.
// An empty body decodes to the zero value so handlers can report missing fields themselves.
func parseBody(c *fiber.Ctx, dest any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(dest); err != nil {
		return errInvalidBody
	}
	return nil
}

// currentIdentity returns the identity attached by AuthRequired.
func currentIdentity(c *fiber.Ctx) (models.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return models.Identity{}, errNotAuthenticated
	}
	return identity, nil
}

// respondError writes the error body for err. Server-side failures are logged with their cause.
func respondError(c *fiber.Ctx, err error) error {
	if models.StatusFor(err) >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithError(c, err)
}
