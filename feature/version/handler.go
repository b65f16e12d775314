package version

import (
	"gallery-index/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the data version.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the version route.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/version", h.HandleGetVersion)
}

// HandleGetVersion returns the current data version.
// @Summary Get Data Version
// @Description Clients compare the version to drop cached gallery content.
// @Tags version
// @Produce json
// @Success 200 {object} map[string]int64
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /version [get]
func (h *Handler) HandleGetVersion(c *fiber.Ctx) error {
	v, err := h.service.Current(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Reading data version failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"version": v})
}
