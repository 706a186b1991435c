package cmd

import (
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/learnhub/institute-console/internal/core/domain"
	"github.com/learnhub/institute-console/internal/core/service"
)

var (
	authorizeRole  string
	authorizeRoute string
)

var authorizeCmd = &cobra.Command{
	Use:   "authorize",
	Short: "Show how the session gate treats a route for a role",
	Long: `authorize evaluates a route the way the console does on navigation.
Omit --role to evaluate it for an anonymous visitor.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printDecision(cmd.OutOrStdout(), domain.Role(authorizeRole), authorizeRoute)
	},
}

func init() {
	authorizeCmd.Flags().StringVar(&authorizeRole, "role", "", "Session role; empty means no session")
	authorizeCmd.Flags().StringVar(&authorizeRoute, "route", "", "Route to evaluate, e.g. /dashboard/fees")
	_ = authorizeCmd.MarkFlagRequired("route")
}

func printDecision(out io.Writer, role domain.Role, route string) error {
	var session *domain.Session
	if role != "" {
		session = &domain.Session{ID: "cli", Role: role}
	}
	d := service.Authorize(session, route)

	switch d.Kind {
	case domain.DecisionAllow:
		pterm.Success.WithWriter(out).Printfln("%s may view %s", roleName(role), route)
	case domain.DecisionRedirectLogin:
		pterm.Warning.WithWriter(out).Printfln("%s is sent to %s (from %s)", roleName(role), d.Location(), d.From)
	default:
		pterm.Warning.WithWriter(out).Printfln("%s is sent to %s", roleName(role), d.Location())
	}
	return nil
}

func roleName(role domain.Role) string {
	if role == "" {
		return "anonymous"
	}
	return string(role)
}
