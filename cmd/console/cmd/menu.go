package cmd

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/learnhub/institute-console/internal/core/domain"
	"github.com/learnhub/institute-console/internal/core/service"
)

var (
	menuRole string
	menuJSON bool
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Print the navigation menu a role sees",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printMenu(cmd.OutOrStdout(), domain.Role(menuRole), menuJSON)
	},
}

func init() {
	menuCmd.Flags().StringVar(&menuRole, "role", "", "Role to build the menu for (Admin or Staff)")
	menuCmd.Flags().BoolVar(&menuJSON, "json", false, "Print the menu as JSON")
}

func printMenu(out io.Writer, role domain.Role, asJSON bool) error {
	groups := service.BuildMenu(role)

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(groups)
	}

	if len(groups) == 0 {
		pterm.Warning.WithWriter(out).Printfln("No menu for role %q", role)
		return nil
	}

	data := pterm.TableData{{"GROUP", "ID", "TITLE", "ROUTE", "VISIBLE"}}
	for _, g := range groups {
		for _, e := range g.Entries {
			data = append(data, []string{g.Title, e.ID, e.Title, e.Route.Path(), strconv.FormatBool(e.Visible)})
		}
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(out).Render()
}
