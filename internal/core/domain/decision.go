package domain

// DecisionKind is the outcome of a route evaluation.
type DecisionKind string

const (
	DecisionAllow           DecisionKind = "allow"
	DecisionRedirectLogin   DecisionKind = "redirect_login"
	DecisionRedirectDefault DecisionKind = "redirect_default"
)

// Decision tells the router what to do with a navigation attempt.
//
// For DecisionRedirectLogin, From holds the route originally requested so the
// login collaborator can return the user there. For DecisionRedirectDefault,
// Role and Target describe where the role is sent instead.
type Decision struct {
	Kind   DecisionKind `json:"kind"`
	Route  string       `json:"route"`
	From   string       `json:"from,omitempty"`
	Role   Role         `json:"role,omitempty"`
	Target Route        `json:"target,omitempty"`
}

func Allow(route string) Decision {
	return Decision{Kind: DecisionAllow, Route: route}
}

func RedirectToLogin(original string) Decision {
	return Decision{Kind: DecisionRedirectLogin, Route: original, From: original}
}

func RedirectToDefault(route string, role Role, target Route) Decision {
	return Decision{Kind: DecisionRedirectDefault, Route: route, Role: role, Target: target}
}

// Allowed reports whether the requested page may be rendered.
func (d Decision) Allowed() bool {
	return d.Kind == DecisionAllow
}

// Location is the path the router should redirect to, or "" for Allow.
func (d Decision) Location() string {
	switch d.Kind {
	case DecisionRedirectLogin:
		return RouteLogin.Path()
	case DecisionRedirectDefault:
		return d.Target.Path()
	}
	return ""
}
