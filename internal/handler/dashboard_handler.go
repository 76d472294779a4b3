package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/classward/classward-api/internal/service"
	"github.com/classward/classward-api/internal/utils"
)

// DashboardHandler serves the per-user dashboard views.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler builds a dashboard handler instance.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// RegisterStudent attaches the student dashboard route.
func (h *DashboardHandler) RegisterStudent(router fiber.Router) {
	router.Get("/dashboard", h.studentDashboard)
}

// RegisterInstructor attaches the instructor dashboard route.
func (h *DashboardHandler) RegisterInstructor(router fiber.Router) {
	router.Get("/dashboard", h.instructorDashboard)
}

func (h *DashboardHandler) studentDashboard(c *fiber.Ctx) error {
	rows, err := h.service.StudentDashboard(c.Context(), userIDFromContext(c))
	if err != nil {
		return sendServiceError(c, err, h.logger)
	}

	return utils.SendSuccess(c, "dashboard retrieved", rows)
}

func (h *DashboardHandler) instructorDashboard(c *fiber.Ctx) error {
	stats, err := h.service.InstructorDashboard(c.Context(), userIDFromContext(c))
	if err != nil {
		return sendServiceError(c, err, h.logger)
	}

	return utils.SendSuccess(c, "dashboard retrieved", stats)
}
