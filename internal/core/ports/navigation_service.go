package ports

import (
	"context"

	"github.com/learnhub/institute-console/internal/core/domain"
)

// NavigationService evaluates navigation attempts and builds menus for the
// transport layer. A nil session means the request is anonymous.
type NavigationService interface {
	Authorize(ctx context.Context, session *domain.Session, route string) domain.Decision
	Menu(session *domain.Session) []domain.MenuGroup
}

// AuditRecorder accepts refused navigation attempts for asynchronous
// persistence. Record must not block the caller.
type AuditRecorder interface {
	Record(event domain.NavigationEvent)
}
