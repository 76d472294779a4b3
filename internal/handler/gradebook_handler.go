package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/classward/classward-api/internal/service"
	"github.com/classward/classward-api/internal/utils"
)

// GradebookHandler serves the reporting views nested under a course.
type GradebookHandler struct {
	service service.GradebookService
	logger  zerolog.Logger
}

// NewGradebookHandler builds a gradebook handler instance.
func NewGradebookHandler(service service.GradebookService, logger zerolog.Logger) *GradebookHandler {
	return &GradebookHandler{
		service: service,
		logger:  logger.With().Str("component", "gradebook_handler").Logger(),
	}
}

// Register attaches the routes to the provided course-scoped group.
func (h *GradebookHandler) Register(router fiber.Router, instructorOnly fiber.Handler) {
	router.Get("/gradebook", instructorOnly, h.gradebook)
	router.Get("/gradebook/me", h.gradebookMe)
	router.Get("/gradebook/summary", instructorOnly, h.summary)
	router.Get("/gradebook/assignments", instructorOnly, h.assignmentStats)
}

func (h *GradebookHandler) gradebook(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	rows, err := h.service.Gradebook(c.Context(), courseID, userIDFromContext(c))
	if err != nil {
		return sendServiceError(c, err, h.logger)
	}

	return utils.SendSuccess(c, "gradebook retrieved", rows)
}

func (h *GradebookHandler) gradebookMe(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	rows, err := h.service.GradebookForStudent(c.Context(), courseID, userIDFromContext(c))
	if err != nil {
		return sendServiceError(c, err, h.logger)
	}

	return utils.SendSuccess(c, "gradebook retrieved", rows)
}

func (h *GradebookHandler) summary(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	summaries, err := h.service.Summary(c.Context(), courseID, userIDFromContext(c))
	if err != nil {
		return sendServiceError(c, err, h.logger)
	}

	return utils.SendSuccess(c, "summary retrieved", summaries)
}

func (h *GradebookHandler) assignmentStats(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "courseID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	stats, err := h.service.AssignmentStats(c.Context(), courseID, userIDFromContext(c))
	if err != nil {
		return sendServiceError(c, err, h.logger)
	}

	return utils.SendSuccess(c, "assignment statistics retrieved", stats)
}
