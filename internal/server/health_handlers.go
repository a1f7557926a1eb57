package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	statusHealthy     = "healthy"
	statusUnhealthy   = "unhealthy"
	statusUnavailable = "unavailable"
)

// HealthCheck is an alias for ReadinessCheck under /api.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/live [get]
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports store and Redis health. Only the store gates readiness; without Redis
// the service still serves requests uncached.
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/ready [get]
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := statusHealthy
	if err := s.runtime.Store.Ping(ctx); err != nil {
		dbStatus = statusUnhealthy
	}

	redisStatus := statusUnavailable
	if s.redis != nil {
		redisStatus = statusHealthy
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = statusUnhealthy
		}
	}

	status := fiber.StatusOK
	overallStatus := statusHealthy
	if dbStatus != statusHealthy {
		status = fiber.StatusServiceUnavailable
		overallStatus = statusUnhealthy
	}

	return c.Status(status).JSON(fiber.Map{
		"ok":     status == fiber.StatusOK,
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"driver":   s.runtime.Store.Driver(),
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthHealth confirms the auth routes are mounted.
// @Summary Auth router probe
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/health [get]
func (s *Server) AuthHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true, "route": "auth"})
}
