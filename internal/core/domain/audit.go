package domain

import "time"

// NavigationEvent records a navigation attempt the Gate refused.
type NavigationEvent struct {
	SessionID  string       `json:"session_id,omitempty" bson:"session_id,omitempty"`
	Identity   string       `json:"identity,omitempty" bson:"identity,omitempty"`
	Role       Role         `json:"role,omitempty" bson:"role,omitempty"`
	Route      string       `json:"route" bson:"route"`
	Decision   DecisionKind `json:"decision" bson:"decision"`
	Target     string       `json:"target,omitempty" bson:"target,omitempty"`
	OccurredAt time.Time    `json:"occurred_at" bson:"occurred_at"`
}

// NewNavigationEvent builds the audit record for d taken on behalf of s.
// s may be nil for anonymous requests.
func NewNavigationEvent(s *Session, d Decision, at time.Time) NavigationEvent {
	ev := NavigationEvent{
		Route:      d.Route,
		Decision:   d.Kind,
		Target:     d.Location(),
		OccurredAt: at.UTC(),
	}
	if s != nil {
		ev.SessionID = s.ID
		ev.Identity = s.Identity
		ev.Role = s.Role
	}
	return ev
}

// ShardKey groups events of one user onto one worker. Anonymous events fall
// back to the requested route.
func (e NavigationEvent) ShardKey() string {
	if e.Identity != "" {
		return e.Identity
	}
	return e.Route
}
