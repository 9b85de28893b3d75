package config

import (
	"flag"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds the application configuration.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	JWTSecret       string
	TokenExpiration time.Duration
	TaxRate         decimal.Decimal
	AdminPassword   string
}

// Load builds the configuration from command-line flags and environment
// variables. Precedence: environment > flags > defaults.
func Load() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port to listen on")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "PostgreSQL connection string")
	flag.Parse()

	if envRunAddr := os.Getenv("RUN_ADDRESS"); envRunAddr != "" {
		cfg.RunAddress = envRunAddr
	}
	if envDBURI := os.Getenv("DATABASE_URI"); envDBURI != "" {
		cfg.DatabaseURI = envDBURI
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "default-secret-change-in-production"
	}

	cfg.TokenExpiration = 6 * time.Hour
	if envExp := os.Getenv("TOKEN_EXPIRATION"); envExp != "" {
		if d, err := time.ParseDuration(envExp); err == nil && d > 0 {
			cfg.TokenExpiration = d
		}
	}

	// IVA rate applied to every order line.
	cfg.TaxRate = decimal.NewFromFloat(0.21)
	if envRate := os.Getenv("TAX_RATE"); envRate != "" {
		if rate, err := decimal.NewFromString(envRate); err == nil && rate.IsPositive() {
			cfg.TaxRate = rate
		}
	}

	// Password for the admin account seeded on an empty users table.
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")

	return cfg
}
