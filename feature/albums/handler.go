package albums

import (
	"gallery-index/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves saved searches.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the album routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/albums", h.HandleList)
}

// HandleList lists saved searches.
// @Summary List Albums
// @Tags albums
// @Produce json
// @Success 200 {array} albums.SavedSearch
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /albums [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	list, err := h.service.List(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Album listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}
