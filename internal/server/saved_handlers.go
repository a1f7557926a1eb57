package server

import (
	"campushub/internal/featureflags"
	"campushub/internal/models"

	"github.com/gofiber/fiber/v2"
)

var errMaintenanceDisabled = models.NewForbiddenError("Maintenance route disabled")

// SavePostRequest is the body of POST /api/posts/save.
type SavePostRequest struct {
	PostID string `json:"postId"`
}

// CleanupResponse reports the outcome of a reconciliation sweep.
type CleanupResponse struct {
	OK             bool `json:"ok"`
	UsersUpdated   int  `json:"usersUpdated"`
	EntriesRemoved int  `json:"entriesRemoved"`
	UsersFailed    int  `json:"usersFailed"`
}

// MaintenanceRequired only lets operator routes through outside production, when
// ALLOW_MAINTENANCE is set, or when the maintenance_routes flag is on.
func (s *Server) MaintenanceRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s.config.MaintenanceAllowed() || s.featureFlags.Global(featureflags.MaintenanceRoutes) {
			return c.Next()
		}
		return respondError(c, errMaintenanceDisabled)
	}
}

// SavePost handles POST /api/posts/save
// @Summary Save a post
// @Description Adds the post to the caller's saved set. Saving twice is a no-op.
// @Tags saved
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SavePostRequest true "Post to save"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/save [post]
func (s *Server) SavePost(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	var req SavePostRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := s.savedService.Save(c.UserContext(), identity, req.PostID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(SuccessResponse{Success: true})
}

// GetSavedPosts handles GET /api/posts/saved
// @Summary List saved posts
// @Description Saved posts that still exist, newest first
// @Tags saved
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Post
// @Failure 401 {object} models.ErrorResponse
// @Router /posts/saved [get]
func (s *Server) GetSavedPosts(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, err)
	}

	posts, err := s.savedService.ListSaved(c.UserContext(), identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// CleanupSavedPosts handles POST /api/posts/cleanup-saved
// @Summary Prune dangling saved references
// @Tags saved
// @Produce json
// @Success 200 {object} CleanupResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /posts/cleanup-saved [post]
func (s *Server) CleanupSavedPosts(c *fiber.Ctx) error {
	report, err := s.savedService.ReconcileAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(CleanupResponse{
		OK:             true,
		UsersUpdated:   report.UsersUpdated,
		EntriesRemoved: report.EntriesRemoved,
		UsersFailed:    report.UsersFailed,
	})
}
