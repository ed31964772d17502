package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/coursemart/internal/config"
	"github.com/localnerve/coursemart/internal/services"
	"gorm.io/gorm"
)

// HealthHandler reports dependency health
type HealthHandler struct {
	Config    *config.Config
	CatalogDB *gorm.DB
	UserDB    *gorm.DB
}

// Health handles GET /health
// @Summary Service health
// @Description Pings both record stores and the identity provider
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.CatalogDB, h.UserDB)
	if !result.Healthy() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(result)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
