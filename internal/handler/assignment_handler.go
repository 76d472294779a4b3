package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/classward/classward-api/internal/dto"
	"github.com/classward/classward-api/internal/service"
	"github.com/classward/classward-api/internal/utils"
)

// AssignmentHandler manages assignment endpoints nested under a course.
type AssignmentHandler struct {
	service service.AssignmentService
	logger  zerolog.Logger
}

// NewAssignmentHandler builds an assignment handler instance.
func NewAssignmentHandler(service service.AssignmentService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: service,
		logger:  logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AssignmentHandler) Register(router fiber.Router, instructorOnly fiber.Handler) {
	router.Get("", h.list)
	router.Post("", instructorOnly, h.create)
}

func (h *AssignmentHandler) create(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AssignmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.service.Create(c.Context(), courseID, userIDFromContext(c), payload)
	if err != nil {
		return sendServiceError(c, err, h.logger)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment created", assignment)
}

func (h *AssignmentHandler) list(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	assignments, err := h.service.ListForCourse(c.Context(), courseID, userIDFromContext(c))
	if err != nil {
		return sendServiceError(c, err, h.logger)
	}

	return utils.SendSuccess(c, "assignments retrieved", assignments)
}
