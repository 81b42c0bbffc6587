package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yard/internal/adapters/out/postgres/migrations"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(logger *slog.Logger) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API and the overdue order sweep",
		RunE: func(c *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			configs, app, err := compose(logger)
			if err != nil {
				return err
			}

			if migrate {
				if _, err = migrations.Up(configs.DSN()); err != nil {
					return err
				}
			}

			server, err := app.NewHTTPServer(ctx)
			if err != nil {
				return err
			}

			jobManager := app.NewJobManager()
			if err = jobManager.StartAll(); err != nil {
				return err
			}
			defer jobManager.StopAll()

			port := configs.HTTPPort
			if port == "" {
				port = "8080"
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start(port)
			}()
			fmt.Printf("%s yard listening on :%s\n", color.New(color.FgGreen).Sprint("✓"), port)

			select {
			case err = <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err = server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shut down http server: %w", err)
			}
			fmt.Printf("%s yard stopped\n", color.New(color.FgYellow).Sprint("!"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}
