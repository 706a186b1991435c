package domain

// MenuEntry is a single navigation item. Icon is the name of the icon the UI
// renders. Entries with Visible=false are routable pages opened from inside
// another page rather than from the drawer.
type MenuEntry struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Route   Route  `json:"route"`
	Icon    string `json:"icon"`
	Visible bool   `json:"visible"`
}

// MenuGroup is a titled, ordered block of entries.
type MenuGroup struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Entries []MenuEntry `json:"entries"`
}

// menuCatalog is the full menu in render order. Which entries a role sees is
// decided by the permission table, never here.
var menuCatalog = []MenuGroup{
	{
		ID:    "group-dashboard",
		Title: "Main",
		Entries: []MenuEntry{
			{ID: "dashboard", Title: "Dashboard", Route: RouteDashboard, Icon: "DashboardOutlined", Visible: true},
			{ID: "visitor", Title: "Visitor", Route: RouteVisitor, Icon: "UserOutlined", Visible: true},
			{ID: "admission", Title: "Admission", Route: RouteAdmission, Icon: "SolutionOutlined", Visible: true},
			{ID: "sdetails", Title: "Student Details", Route: RouteStudentDetails, Icon: "TeamOutlined", Visible: true},
			{ID: "sprofile", Title: "Student Profile", Route: RouteStudentProfile, Icon: "IdcardOutlined", Visible: false},
			{ID: "alumni", Title: "Alumni Students", Route: RouteAlumni, Icon: "TeamOutlined", Visible: true},
			{ID: "alumniDetails", Title: "Alumni Details", Route: RouteAlumniDetails, Icon: "ContactsOutlined", Visible: true},
			{ID: "fees", Title: "Fees", Route: RouteFees, Icon: "DollarOutlined", Visible: true},
			{ID: "users-details", Title: "Users Details", Route: RouteUserDetails, Icon: "FontSizeOutlined", Visible: true},
		},
	},
	{
		ID:    "course",
		Title: "Course Details",
		Entries: []MenuEntry{
			{ID: "courseName", Title: "Course Name", Route: RouteCourseName, Icon: "LoginOutlined", Visible: true},
		},
	},
	{
		ID:    "accounts",
		Title: "Accounts & Support",
		Entries: []MenuEntry{
			{ID: "accounts", Title: "Accounts", Route: RouteAccounts, Icon: "QuestionCircleOutlined", Visible: true},
			{ID: "support", Title: "Support", Route: RouteSupport, Icon: "ChromeOutlined", Visible: true},
		},
	},
}

// MenuCatalog returns a deep copy of the full menu.
func MenuCatalog() []MenuGroup {
	out := make([]MenuGroup, len(menuCatalog))
	for i, g := range menuCatalog {
		out[i] = MenuGroup{ID: g.ID, Title: g.Title, Entries: append([]MenuEntry(nil), g.Entries...)}
	}
	return out
}

// DefaultRoute is where a role lands when it is refused a page: its first
// visible, permitted menu entry.
func DefaultRoute(role Role) (Route, bool) {
	for _, g := range menuCatalog {
		for _, e := range g.Entries {
			if e.Visible && Permits(role, e.Route) {
				return e.Route, true
			}
		}
	}
	return "", false
}

// EntryFor returns the catalog entry whose route is r.
func EntryFor(r Route) (MenuEntry, bool) {
	for _, g := range menuCatalog {
		for _, e := range g.Entries {
			if e.Route == r {
				return e, true
			}
		}
	}
	return MenuEntry{}, false
}
