package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/learnhub/institute-console/internal/core/domain"
	"github.com/learnhub/institute-console/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService persisting events through repo.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single navigation audit event.
func (s *auditService) Process(ctx context.Context, event domain.NavigationEvent) error {
	if event.Route == "" || event.Decision == "" {
		return fmt.Errorf("process navigation event: incomplete event for route %q", event.Route)
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	if err := s.repo.InsertNavigationEvent(ctx, &event); err != nil {
		return fmt.Errorf("process navigation event: %w", err)
	}

	s.log.Info().
		Str("identity", event.Identity).
		Str("role", string(event.Role)).
		Str("route", event.Route).
		Str("decision", string(event.Decision)).
		Msg("navigation event recorded")

	return nil
}
