package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/classward/classward-api/internal/dto"
	"github.com/classward/classward-api/internal/service"
	"github.com/classward/classward-api/internal/utils"
)

// CourseHandler manages course endpoints.
type CourseHandler struct {
	service service.CourseService
	logger  zerolog.Logger
}

// NewCourseHandler builds a course handler instance.
func NewCourseHandler(service service.CourseService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		service: service,
		logger:  logger.With().Str("component", "course_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *CourseHandler) Register(router fiber.Router, instructorOnly fiber.Handler) {
	router.Get("", h.list)
	router.Get("/me", h.listMine)
	router.Post("", instructorOnly, h.create)
}

func (h *CourseHandler) create(c *fiber.Ctx) error {
	var payload dto.CourseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	course, err := h.service.Create(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return sendServiceError(c, err, h.logger)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "course created", course)
}

func (h *CourseHandler) list(c *fiber.Ctx) error {
	courses, err := h.service.List(c.Context())
	if err != nil {
		return sendServiceError(c, err, h.logger)
	}

	return utils.SendSuccess(c, "courses retrieved", courses)
}

func (h *CourseHandler) listMine(c *fiber.Ctx) error {
	courses, err := h.service.ListMine(c.Context(), userIDFromContext(c))
	if err != nil {
		return sendServiceError(c, err, h.logger)
	}

	return utils.SendSuccess(c, "courses retrieved", courses)
}
