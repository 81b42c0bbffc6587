package main

import (
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func sweepCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Fail unpaid orders older than PAYMENT_TTL once and exit",
		RunE: func(c *cobra.Command, _ []string) error {
			_, app, err := compose(logger)
			if err != nil {
				return err
			}

			n, err := app.NewOverdueOrderJob().RunOnce(c.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s %d overdue orders failed\n", color.New(color.FgGreen).Sprint("✓"), n)
			return nil
		},
	}
}
