package cmd

import (
	"fmt"
	"strconv"
	"time"
	_ "time/tzdata"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/jobs"
)

const (
	DefaultFacilityTZ    = "Asia/Almaty"
	DefaultMinimalLoadKg = 1000
	DefaultPaymentTTL    = 72 * time.Hour
)

// Config holds the raw environment values.
type Config struct {
	HTTPPort         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	FacilityTZ       string
	MinimalLoadKg    string
	PaymentTTL       string
	OverdueSweepCron string
}

// Settings are the parsed business values of a Config.
type Settings struct {
	Location         *time.Location
	MinimalLoad      kernel.Weight
	PaymentTTL       time.Duration
	OverdueSweepSpec string
}

// DSN is the key/value connection string understood by both pgx and lib/pq.
func (c Config) DSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}

// Settings parses the business values, falling back to defaults for empty ones.
func (c Config) Settings() (Settings, error) {
	tz := c.FacilityTZ
	if tz == "" {
		tz = DefaultFacilityTZ
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Settings{}, fmt.Errorf("FACILITY_TZ: %w", err)
	}

	minimalLoad := kernel.Kilograms(DefaultMinimalLoadKg)
	if c.MinimalLoadKg != "" {
		kg, parseErr := strconv.ParseFloat(c.MinimalLoadKg, 64)
		if parseErr != nil {
			return Settings{}, fmt.Errorf("MINIMAL_LOAD_KG: %w", parseErr)
		}
		if minimalLoad, err = kernel.WeightFromFloat(kg); err != nil {
			return Settings{}, fmt.Errorf("MINIMAL_LOAD_KG: %w", err)
		}
	}

	ttl := DefaultPaymentTTL
	if c.PaymentTTL != "" {
		if ttl, err = time.ParseDuration(c.PaymentTTL); err != nil {
			return Settings{}, fmt.Errorf("PAYMENT_TTL: %w", err)
		}
		if ttl <= 0 {
			return Settings{}, fmt.Errorf("PAYMENT_TTL must be positive, got %s", ttl)
		}
	}

	spec := c.OverdueSweepCron
	if spec == "" {
		spec = jobs.DefaultOverdueSweepSpec
	}

	return Settings{
		Location:         loc,
		MinimalLoad:      minimalLoad,
		PaymentTTL:       ttl,
		OverdueSweepSpec: spec,
	}, nil
}
