package ports

import (
	"context"

	"github.com/learnhub/institute-console/internal/core/domain"
)

// AuditService processes navigation audit events dequeued by the dispatcher.
type AuditService interface {
	Process(ctx context.Context, event domain.NavigationEvent) error
}
