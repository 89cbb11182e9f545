package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/supportdesk/supportdesk/internal/interfaces/cli/server"
	"github.com/supportdesk/supportdesk/internal/interfaces/cli/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "supportdesk",
		Short: "Support desk - tickets and chat between customers and support",
		Long:  `Support desk serves the customer and admin ticket desks over HTTP.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		version.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
