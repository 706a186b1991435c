package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/learnhub/institute-console/internal/core/domain"
	"github.com/learnhub/institute-console/internal/core/ports"
)

// NavigationService serves Gate decisions and menus to the transport layer
// and hands refused navigation attempts to the audit recorder.
type NavigationService struct {
	recorder ports.AuditRecorder
	log      zerolog.Logger
	now      func() time.Time
}

// NewNavigationService returns a NavigationService. recorder may be nil, in
// which case refused attempts are only logged.
func NewNavigationService(recorder ports.AuditRecorder, log zerolog.Logger) *NavigationService {
	return &NavigationService{
		recorder: recorder,
		log:      log,
		now:      time.Now,
	}
}

// Authorize evaluates route for session. The decision itself comes from the
// pure Authorize; this method only observes it.
func (s *NavigationService) Authorize(_ context.Context, session *domain.Session, route string) domain.Decision {
	d := Authorize(session, route)
	if d.Allowed() {
		return d
	}

	s.log.Debug().
		Str("route", route).
		Str("role", string(session.RoleOrEmpty())).
		Str("decision", string(d.Kind)).
		Str("location", d.Location()).
		Msg("navigation refused")

	if s.recorder != nil {
		s.recorder.Record(domain.NewNavigationEvent(session, d, s.now()))
	}
	return d
}

// Menu returns the menu for the session's role; nil sessions get none.
func (s *NavigationService) Menu(session *domain.Session) []domain.MenuGroup {
	return BuildMenu(session.RoleOrEmpty())
}
