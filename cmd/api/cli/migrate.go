// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/dishhub/internal/platform/migration"
)

// NewMigrateCommand returns "migrate" with up, down and version.
func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, closer, err := bootstrap()
			if err != nil {
				return err
			}
			defer closer.Close()

			return migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log)
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, closer, err := bootstrap()
			if err != nil {
				return err
			}
			defer closer.Close()

			return migration.RunDown(cfg.DatabaseURL, cfg.MigrationPath, steps, log)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, closer, err := bootstrap()
			if err != nil {
				return err
			}
			defer closer.Close()

			state, err := migration.CurrentState(cfg.DatabaseURL, cfg.MigrationPath, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", state.Version, state.Dirty)
			return nil
		},
	})

	return cmd
}
