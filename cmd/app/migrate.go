package main

import (
	"fmt"

	"yard/internal/adapters/out/postgres/migrations"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			changed, err := migrations.Up(getConfigs().DSN())
			if err != nil {
				return err
			}
			if changed {
				fmt.Printf("%s migrations applied\n", color.New(color.FgGreen).Sprint("✓"))
			} else {
				fmt.Printf("%s schema is up to date\n", color.New(color.FgGreen).Sprint("✓"))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revert all migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := migrations.Down(getConfigs().DSN()); err != nil {
				return err
			}
			fmt.Printf("%s migrations reverted\n", color.New(color.FgYellow).Sprint("!"))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		RunE: func(_ *cobra.Command, _ []string) error {
			version, dirty, err := migrations.Version(getConfigs().DSN())
			if err != nil {
				return err
			}
			state := color.New(color.FgGreen).Sprint("clean")
			if dirty {
				state = color.New(color.FgRed).Sprint("DIRTY")
			}
			fmt.Printf("schema version %d (%s)\n", version, state)
			return nil
		},
	})

	return cmd
}
