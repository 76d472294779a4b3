package service

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Event subjects published by the submission lifecycle.
const (
	EventSubmissionReceived = "submission.received"
	EventSubmissionGraded   = "submission.graded"
	EventEnrollmentCreated  = "enrollment.created"
)

// EventPublisher emits domain events for downstream consumers (notification
// workers, analytics). Publication is best-effort: a failed publish is
// logged and never fails the originating request.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload interface{})
}

type natsEventPublisher struct {
	conn   *nats.Conn
	prefix string
	logger zerolog.Logger
}

// NewNATSEventPublisher constructs an EventPublisher backed by NATS. Subjects
// are prefixed, e.g. "classward.submission.graded".
func NewNATSEventPublisher(conn *nats.Conn, prefix string, logger zerolog.Logger) EventPublisher {
	if prefix == "" {
		prefix = "classward"
	}

	return &natsEventPublisher{
		conn:   conn,
		prefix: prefix,
		logger: logger.With().Str("component", "event_publisher").Logger(),
	}
}

func (p *natsEventPublisher) Publish(_ context.Context, subject string, payload interface{}) {
	if p.conn == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to encode event payload")
		return
	}

	if err := p.conn.Publish(p.prefix+"."+subject, data); err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish event")
	}
}
