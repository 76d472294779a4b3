package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/classward/classward-api/internal/dto"
	"github.com/classward/classward-api/internal/service"
	"github.com/classward/classward-api/internal/utils"
)

// EnrollmentHandler manages enrollment endpoints.
type EnrollmentHandler struct {
	service service.EnrollmentService
	logger  zerolog.Logger
}

// NewEnrollmentHandler builds an enrollment handler instance.
func NewEnrollmentHandler(service service.EnrollmentService, logger zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		service: service,
		logger:  logger.With().Str("component", "enrollment_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *EnrollmentHandler) Register(router fiber.Router) {
	router.Post("", h.enroll)
	router.Get("/me", h.listMine)
}

func (h *EnrollmentHandler) enroll(c *fiber.Ctx) error {
	var payload dto.EnrollmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	enrollment, err := h.service.Enroll(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return sendServiceError(c, err, h.logger)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "enrolled", enrollment)
}

func (h *EnrollmentHandler) listMine(c *fiber.Ctx) error {
	enrollments, err := h.service.ListMine(c.Context(), userIDFromContext(c))
	if err != nil {
		return sendServiceError(c, err, h.logger)
	}

	return utils.SendSuccess(c, "enrollments retrieved", enrollments)
}
