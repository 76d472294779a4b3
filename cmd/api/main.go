package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/classward/classward-api/internal/config"
	"github.com/classward/classward-api/internal/database"
	"github.com/classward/classward-api/internal/handler"
	"github.com/classward/classward-api/internal/middleware"
	"github.com/classward/classward-api/internal/models"
	"github.com/classward/classward-api/internal/repository"
	"github.com/classward/classward-api/internal/router"
	"github.com/classward/classward-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Enrollment{},
		&models.Assignment{},
		&models.Submission{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Redis and NATS are optional; leaving the URL empty disables dashboard
	// caching and event publication respectively.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	events := service.NewNATSEventPublisher(natsConn, "", logger)
	activity := service.NewActivityService(activityRepo, logger)

	courseService := service.NewCourseService(courseRepo, validate, logger)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo, validate, events, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, courseRepo, enrollmentRepo, validate, logger)
	submissionService := service.NewSubmissionService(
		submissionRepo,
		assignmentRepo,
		courseRepo,
		enrollmentRepo,
		validate,
		cfg.LatePolicy,
		cfg.StrictDeadlines,
		activity,
		events,
		logger,
	)
	gradebookService := service.NewGradebookService(courseRepo, enrollmentRepo, assignmentRepo, submissionRepo, cfg.LatePolicy, logger)
	dashboardService := service.NewDashboardService(courseRepo, enrollmentRepo, assignmentRepo, submissionRepo, redisClient, cfg.DashboardCacheTTL, logger)

	courseHandler := handler.NewCourseHandler(courseService, logger)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService, logger)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, logger)
	submissionHandler := handler.NewSubmissionHandler(submissionService, dashboardService, logger)
	gradebookHandler := handler.NewGradebookHandler(gradebookService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		CourseHandler:     courseHandler,
		EnrollmentHandler: enrollmentHandler,
		AssignmentHandler: assignmentHandler,
		SubmissionHandler: submissionHandler,
		GradebookHandler:  gradebookHandler,
		DashboardHandler:  dashboardHandler,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	logger.Info().Str("addr", cfg.HTTPAddress()).Str("env", cfg.AppEnv).Msg("server started")

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
