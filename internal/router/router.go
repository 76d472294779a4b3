package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/classward/classward-api/internal/config"
	"github.com/classward/classward-api/internal/handler"
	"github.com/classward/classward-api/internal/middleware"
	"github.com/classward/classward-api/internal/models"
	"github.com/classward/classward-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	CourseHandler     *handler.CourseHandler
	EnrollmentHandler *handler.EnrollmentHandler
	AssignmentHandler *handler.AssignmentHandler
	SubmissionHandler *handler.SubmissionHandler
	GradebookHandler  *handler.GradebookHandler
	DashboardHandler  *handler.DashboardHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	instructorOnly := middleware.RequireRole(models.RoleInstructor)

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	}, jwtMiddleware)

	if deps.CourseHandler != nil {
		courses := api.Group("/courses")
		deps.CourseHandler.Register(courses, instructorOnly)

		if deps.AssignmentHandler != nil {
			assignments := courses.Group("/:courseID/assignments")
			deps.AssignmentHandler.Register(assignments, instructorOnly)
		}

		if deps.GradebookHandler != nil {
			deps.GradebookHandler.Register(courses.Group("/:courseID"), instructorOnly)
		}
	}

	if deps.EnrollmentHandler != nil {
		enrollments := api.Group("/enrollments")
		deps.EnrollmentHandler.Register(enrollments)
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.RegisterAssignmentRoutes(api.Group("/assignments"), instructorOnly)
		deps.SubmissionHandler.RegisterSubmissionRoutes(api.Group("/submissions"), instructorOnly)
	}

	if deps.DashboardHandler != nil {
		deps.DashboardHandler.RegisterStudent(api.Group("/me", middleware.RequireRole(models.RoleStudent)))
		deps.DashboardHandler.RegisterInstructor(api.Group("/instructor", instructorOnly))
	}
}
