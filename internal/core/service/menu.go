package service

import (
	"github.com/learnhub/institute-console/internal/core/domain"
)

// BuildMenu returns the navigation menu for role in render order. Entries are
// kept only when the permission table grants role their route, and groups
// left without entries are omitted. Unknown roles get an empty menu.
//
// The result is freshly allocated on every call.
func BuildMenu(role domain.Role) []domain.MenuGroup {
	groups := []domain.MenuGroup{}
	if !role.Known() {
		return groups
	}

	for _, g := range domain.MenuCatalog() {
		entries := make([]domain.MenuEntry, 0, len(g.Entries))
		for _, e := range g.Entries {
			if domain.Permits(role, e.Route) {
				entries = append(entries, e)
			}
		}
		if len(entries) == 0 {
			continue
		}
		g.Entries = entries
		groups = append(groups, g)
	}
	return groups
}

// BuildMenuStored is BuildMenu over a persisted session record.
func BuildMenuStored(record []byte) []domain.MenuGroup {
	session, err := domain.DecodeSession(record)
	if err != nil {
		return []domain.MenuGroup{}
	}
	return BuildMenu(session.Role)
}
