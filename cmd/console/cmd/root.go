package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "console",
	Short: "Institute console - session gate and navigation menu service",
	Long: `console runs the institute admin console API and offers operator tools:
create console accounts, print the menu a role sees, and check how the
session gate treats a route.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(addUserCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(authorizeCmd)
}
