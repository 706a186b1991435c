package ports

import (
	"context"

	"github.com/learnhub/institute-console/internal/core/domain"
)

// AuditRepository persists navigation audit events.
type AuditRepository interface {
	InsertNavigationEvent(ctx context.Context, event *domain.NavigationEvent) error
}
