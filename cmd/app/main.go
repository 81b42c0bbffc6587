package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"yard/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:          "yard",
		Short:        "Yard - loading slots, visits and checkpoints of a shipping facility",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(serveCmd(logger))
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(sweepCmd(logger))

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		FacilityTZ:       goDotEnvVariable("FACILITY_TZ"),
		MinimalLoadKg:    goDotEnvVariable("MINIMAL_LOAD_KG"),
		PaymentTTL:       goDotEnvVariable("PAYMENT_TTL"),
		OverdueSweepCron: goDotEnvVariable("OVERDUE_SWEEP_CRON"),
	}
}

func goDotEnvVariable(key string) string {
	return os.Getenv(key)
}

// compose opens the database and builds the composition root.
func compose(logger *slog.Logger) (cmd.Config, cmd.CompositionRoot, error) {
	configs := getConfigs()
	settings, err := configs.Settings()
	if err != nil {
		return configs, cmd.CompositionRoot{}, err
	}

	db, err := cmd.OpenDatabase(configs)
	if err != nil {
		return configs, cmd.CompositionRoot{}, err
	}

	app, err := cmd.NewCompositionRoot(settings, db, logger)
	return configs, app, err
}
