package service

import (
	"reflect"
	"testing"

	"github.com/learnhub/institute-console/internal/core/domain"
)

func menuRoutes(groups []domain.MenuGroup) map[domain.Route]bool {
	out := make(map[domain.Route]bool)
	for _, g := range groups {
		for _, e := range g.Entries {
			out[e.Route] = true
		}
	}
	return out
}

func TestBuildMenu_Deterministic(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleStaff, "unknown", ""} {
		a := BuildMenu(role)
		b := BuildMenu(role)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("BuildMenu(%q) not deterministic", role)
		}
	}
}

func TestBuildMenu_ResultsAreIndependent(t *testing.T) {
	a := BuildMenu(domain.RoleAdmin)
	a[0].Entries[0].Title = "mutated"
	a[0].Entries = a[0].Entries[:1]

	b := BuildMenu(domain.RoleAdmin)
	if b[0].Entries[0].Title == "mutated" || len(b[0].Entries) == 1 {
		t.Fatalf("mutating one menu must not affect the next")
	}
}

func TestBuildMenu_Admin(t *testing.T) {
	groups := BuildMenu(domain.RoleAdmin)

	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	if !reflect.DeepEqual(ids, []string{"group-dashboard", "course", "accounts"}) {
		t.Fatalf("unexpected admin group order: %v", ids)
	}

	routes := menuRoutes(groups)
	for _, r := range []domain.Route{domain.RouteUserDetails, domain.RouteAccounts, domain.RouteCourseName} {
		if !routes[r] {
			t.Fatalf("admin menu missing %s", r)
		}
	}
}

func TestBuildMenu_Staff(t *testing.T) {
	groups := BuildMenu(domain.RoleStaff)

	want := map[domain.Route]bool{
		domain.RouteVisitor:        true,
		domain.RouteAdmission:      true,
		domain.RouteStudentDetails: true,
		domain.RouteFees:           true,
		domain.RouteAlumni:         true,
		domain.RouteAlumniDetails:  true,
	}
	if got := menuRoutes(groups); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected staff routes: %v", got)
	}

	for _, g := range groups {
		if len(g.Entries) == 0 {
			t.Fatalf("empty group %s must be omitted", g.ID)
		}
	}
	if len(groups) != 1 || groups[0].ID != "group-dashboard" {
		t.Fatalf("staff should only see the main group, got %+v", groups)
	}

	order := make([]string, 0, len(groups[0].Entries))
	for _, e := range groups[0].Entries {
		order = append(order, e.ID)
	}
	wantOrder := []string{"visitor", "admission", "sdetails", "alumni", "alumniDetails", "fees"}
	if !reflect.DeepEqual(order, wantOrder) {
		t.Fatalf("unexpected staff entry order: %v", order)
	}
}

func TestBuildMenu_UnknownRoleIsEmpty(t *testing.T) {
	for _, role := range []domain.Role{"", "unknown", "admin", "Manager"} {
		groups := BuildMenu(role)
		if groups == nil || len(groups) != 0 {
			t.Fatalf("BuildMenu(%q) = %v, want empty non-nil slice", role, groups)
		}
	}
}

func TestBuildMenuStored(t *testing.T) {
	if got := BuildMenuStored([]byte("garbage")); len(got) != 0 {
		t.Fatalf("malformed record must produce empty menu, got %v", got)
	}
	if got := BuildMenuStored([]byte(`{"role":"Staff"}`)); len(got) != 1 {
		t.Fatalf("expected staff menu, got %v", got)
	}
}

func TestBuildMenu_ConsistentWithGate(t *testing.T) {
	for _, role := range domain.Roles {
		s := session(role)
		for _, g := range BuildMenu(role) {
			for _, e := range g.Entries {
				if d := Authorize(s, e.Route.Path()); !d.Allowed() {
					t.Fatalf("%s menu entry %s refused by gate: %+v", role, e.Route, d)
				}
			}
		}
	}
}

func TestBuildMenu_EveryPermittedRouteHasEntry(t *testing.T) {
	for _, role := range domain.Roles {
		routes := menuRoutes(BuildMenu(role))
		for _, r := range domain.PermittedRoutes(role) {
			if !routes[r] {
				t.Fatalf("%s may open %s but no menu entry leads there", role, r)
			}
		}
	}
}
