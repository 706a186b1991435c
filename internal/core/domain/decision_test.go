package domain

import (
	"testing"
	"time"
)

func TestDecision_Location(t *testing.T) {
	if loc := Allow("dashboard/fees").Location(); loc != "" {
		t.Fatalf("allow must not redirect, got %q", loc)
	}
	if loc := RedirectToLogin("/dashboard/fees").Location(); loc != "/login" {
		t.Fatalf("expected /login, got %q", loc)
	}
	d := RedirectToDefault("/dashboard/accounts", RoleStaff, RouteVisitor)
	if loc := d.Location(); loc != "/dashboard/visitor" {
		t.Fatalf("expected /dashboard/visitor, got %q", loc)
	}
	if d.Allowed() {
		t.Fatalf("redirect must not be allowed")
	}
}

func TestNewNavigationEvent(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := &Session{ID: "sid", Identity: "u-1", Role: RoleStaff}
	ev := NewNavigationEvent(s, RedirectToDefault("/dashboard/accounts", RoleStaff, RouteVisitor), at)
	if ev.SessionID != "sid" || ev.Identity != "u-1" || ev.Role != RoleStaff {
		t.Fatalf("unexpected session fields: %+v", ev)
	}
	if ev.Target != "/dashboard/visitor" || ev.Decision != DecisionRedirectDefault {
		t.Fatalf("unexpected decision fields: %+v", ev)
	}
	if ev.ShardKey() != "u-1" {
		t.Fatalf("expected identity shard key, got %q", ev.ShardKey())
	}

	anon := NewNavigationEvent(nil, RedirectToLogin("/dashboard/fees"), at)
	if anon.Identity != "" || anon.ShardKey() != "/dashboard/fees" {
		t.Fatalf("unexpected anonymous event: %+v", anon)
	}
}
