package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/classward/classward-api/internal/models"
	"github.com/classward/classward-api/internal/repository"
)

// ActivityActor identifies the authenticated user performing an action.
type ActivityActor struct {
	ID   uint
	Role string
}

// ActivityEntry captures the details required to persist an audit entry.
type ActivityEntry struct {
	ActorID    uint
	ActorRole  string
	Action     string
	EntityType string
	EntityID   *uint
	Metadata   map[string]interface{}
}

// ActivityRecorder defines behaviour for recording audit logs. Services hold
// it as an optional collaborator; a nil recorder disables auditing.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry) (models.ActivityLog, error)
}

type activityService struct {
	repo   repository.ActivityLogRepository
	logger zerolog.Logger
}

// NewActivityService constructs the audit log recorder.
func NewActivityService(repo repository.ActivityLogRepository, logger zerolog.Logger) ActivityRecorder {
	return &activityService{
		repo:   repo,
		logger: logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) Record(ctx context.Context, entry ActivityEntry) (models.ActivityLog, error) {
	if strings.TrimSpace(entry.Action) == "" {
		return models.ActivityLog{}, fmt.Errorf("action is required")
	}
	if strings.TrimSpace(entry.EntityType) == "" {
		return models.ActivityLog{}, fmt.Errorf("entity type is required")
	}

	model := models.ActivityLog{
		ActorID:    entry.ActorID,
		ActorRole:  strings.ToLower(strings.TrimSpace(entry.ActorRole)),
		Action:     strings.ToLower(strings.TrimSpace(entry.Action)),
		EntityType: strings.ToLower(strings.TrimSpace(entry.EntityType)),
		EntityID:   entry.EntityID,
	}

	if len(entry.Metadata) > 0 {
		model.Metadata = datatypes.JSONMap(entry.Metadata)
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		return models.ActivityLog{}, err
	}

	s.logger.Debug().Str("action", model.Action).Uint("actor_id", model.ActorID).Msg("activity recorded")

	return model, nil
}
