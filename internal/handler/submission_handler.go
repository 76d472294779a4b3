package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/classward/classward-api/internal/dto"
	"github.com/classward/classward-api/internal/service"
	"github.com/classward/classward-api/internal/utils"
)

// SubmissionHandler manages submission and grading endpoints.
type SubmissionHandler struct {
	service   service.SubmissionService
	dashboard service.DashboardService
	logger    zerolog.Logger
}

// NewSubmissionHandler builds a submission handler instance. The dashboard
// service is optional and only used for cache invalidation after writes.
func NewSubmissionHandler(service service.SubmissionService, dashboard service.DashboardService, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service:   service,
		dashboard: dashboard,
		logger:    logger.With().Str("component", "submission_handler").Logger(),
	}
}

// RegisterAssignmentRoutes attaches the assignment-nested routes.
func (h *SubmissionHandler) RegisterAssignmentRoutes(router fiber.Router, instructorOnly fiber.Handler) {
	router.Post("/:assignmentID/submissions", h.submit)
	router.Get("/:assignmentID/submissions", instructorOnly, h.list)
}

// RegisterSubmissionRoutes attaches the submission-rooted routes.
func (h *SubmissionHandler) RegisterSubmissionRoutes(router fiber.Router, instructorOnly fiber.Handler) {
	router.Patch("/:id/grade", instructorOnly, h.grade)
}

func (h *SubmissionHandler) submit(c *fiber.Ctx) error {
	assignmentID, err := parseUintParam(c, "assignmentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.SubmissionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	studentID := userIDFromContext(c)

	submission, err := h.service.Submit(c.Context(), assignmentID, studentID, payload)
	if err != nil {
		return sendServiceError(c, err, h.logger)
	}

	if h.dashboard != nil {
		h.dashboard.InvalidateStudent(c.Context(), studentID)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "submission received", submission)
}

func (h *SubmissionHandler) list(c *fiber.Ctx) error {
	assignmentID, err := parseUintParam(c, "assignmentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	submissions, err := h.service.ListForAssignment(c.Context(), assignmentID, userIDFromContext(c))
	if err != nil {
		return sendServiceError(c, err, h.logger)
	}

	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *SubmissionHandler) grade(c *fiber.Ctx) error {
	submissionID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.GradeSubmissionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.service.Grade(c.Context(), submissionID, payload, activityActorFromContext(c))
	if err != nil {
		return sendServiceError(c, err, h.logger)
	}

	if h.dashboard != nil {
		h.dashboard.InvalidateStudent(c.Context(), submission.StudentID)
	}

	return utils.SendSuccess(c, "submission graded", submission)
}
