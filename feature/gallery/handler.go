package gallery

import (
	"errors"
	"net/url"

	"gallery-index/core/logger"
	"gallery-index/feature/scanner"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the gallery index.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the gallery routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/gallery")
	group.Get("/content/*", h.HandleGetContent)
	group.Get("/index/status", h.HandleGetStatus)
	group.Delete("/index", h.HandleResetIndex)
}

// HandleGetContent scans a directory and returns its snapshot. Saving the
// snapshot to the index happens in the background.
// @Summary Index Directory
// @Description Scan a gallery directory, queue it for saving and return its content.
// @Tags gallery
// @Produce json
// @Param path path string false "Directory relative to the gallery root"
// @Success 200 {object} models.DirectorySnapshot
// @Failure 400 {object} map[string]string "Path outside the gallery"
// @Failure 404 {object} map[string]string "Directory not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /gallery/content/{path} [get]
func (h *Handler) HandleGetContent(c *fiber.Ctx) error {
	rel, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	snap, err := h.service.IndexDirectory(c.Context(), rel)
	if err != nil {
		switch {
		case errors.Is(err, scanner.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, scanner.ErrOutsideRoot):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		logger.WithRayID(h.service.logger, c).Error("Indexing failed", zap.String("path", rel), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(snap)
}

// HandleGetStatus reports the save queue.
// @Summary Index Status
// @Tags gallery
// @Produce json
// @Success 200 {object} gallery.Status
// @Router /gallery/index/status [get]
func (h *Handler) HandleGetStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

// HandleResetIndex deletes the whole index.
// @Summary Reset Index
// @Tags gallery
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /gallery/index [delete]
func (h *Handler) HandleResetIndex(c *fiber.Ctx) error {
	if err := h.service.ResetIndex(c.Context()); err != nil {
		logger.WithRayID(h.service.logger, c).Error("Index reset failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "reset"})
}
