package notification

import (
	"gallery-index/core/utils"

	"github.com/gofiber/fiber/v2"
)

// Handler serves the kept notifications.
type Handler struct {
	manager *Manager
}

// NewHandler creates a new HTTP handler.
func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// RegisterRoutes registers the notification routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/notifications", h.HandleList)
}

// HandleList lists recent notifications.
// @Summary List Notifications
// @Tags notifications
// @Produce json
// @Param limit query int false "Return only the newest n entries"
// @Success 200 {array} notification.Notification
// @Router /notifications [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	list := h.manager.List()
	if limit := utils.ToInt(c.Query("limit"), 0); limit > 0 && limit < len(list) {
		list = list[len(list)-limit:]
	}
	return c.JSON(list)
}

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the notifications feature.
func NewFeature(manager *Manager) *Feature {
	return &Feature{handler: NewHandler(manager)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "notifications"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
