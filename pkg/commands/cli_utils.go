package commands

import (
	"github.com/spf13/cobra"
)

// NewUtilityCommands creates the maintenance commands (migrate, seed).
func NewUtilityCommands() []*cobra.Command {
	return []*cobra.Command{
		newMigrateCmd(),
		newSeedCmd(),
	}
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return MigrateUp(cmd.Context())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return MigrateDown(cmd.Context())
		},
	})
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with a demo workspace",
		Long:  `Creates a demo workspace with journeys, steps, releases, stories, tags, personas and dependency links.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return SeedDatabase(cmd.Context())
		},
	}
}
