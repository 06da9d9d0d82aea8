package main

import (
	"os"

	"github.com/spf13/cobra"

	"opendesk/internal/interfaces/cli/migrate"
	"opendesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "opendesk",
		Short: "OpenDesk - support ticket engine",
		Long:  `OpenDesk is a support ticket lifecycle engine with an HTTP API, email notifications, and migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
