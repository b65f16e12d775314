package persons

import (
	"errors"

	"gallery-index/core/logger"
	"gallery-index/core/utils"
	"gallery-index/feature/persons/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for persons.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the person routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/persons")
	group.Get("/", h.HandleList)
	group.Get("/:name", h.HandleGet)
	group.Put("/:name", h.HandleUpdate)
}

// HandleList lists persons with at least one face.
// @Summary List Persons
// @Tags persons
// @Produce json
// @Param favourite query bool false "Only favourite persons"
// @Success 200 {array} models.Person
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /persons [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	persons, err := h.service.List(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Person listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if utils.ToBool(c.Query("favourite")) {
		favourites := persons[:0]
		for _, p := range persons {
			if p.IsFavourite {
				favourites = append(favourites, p)
			}
		}
		persons = favourites
	}
	return c.JSON(persons)
}

// HandleGet returns one person.
// @Summary Get Person
// @Tags persons
// @Produce json
// @Param name path string true "Person name"
// @Success 200 {object} models.Person
// @Failure 404 {object} map[string]string "Not Found"
// @Router /persons/{name} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	person, err := h.service.Get(c.Context(), c.Params("name"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(person)
}

// HandleUpdate updates the favourite flag of a person.
// @Summary Update Person
// @Tags persons
// @Accept json
// @Produce json
// @Param name path string true "Person name"
// @Param body body models.PersonUpdate true "Fields to update"
// @Success 200 {object} models.Person
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /persons/{name} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var upd models.PersonUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	person, err := h.service.Update(c.Context(), c.Params("name"), upd)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(person)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrPersonNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error("Person request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
