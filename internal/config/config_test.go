package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoad(t *testing.T) {
	originalArgs := os.Args
	originalEnv := make(map[string]string)
	envVars := []string{"RUN_ADDRESS", "DATABASE_URI", "JWT_SECRET", "TOKEN_EXPIRATION", "TAX_RATE", "ADMIN_PASSWORD"}
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
	}

	defer func() {
		os.Args = originalArgs
		for key, value := range originalEnv {
			if value == "" {
				os.Unsetenv(key)
			} else {
				os.Setenv(key, value)
			}
		}
		flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	}()

	tests := []struct {
		name         string
		args         []string
		envVars      map[string]string
		wantAddress  string
		wantDBURI    string
		wantSecret   string
		wantTokenExp time.Duration
		wantTaxRate  decimal.Decimal
	}{
		{
			name:         "default values",
			args:         []string{"cmd"},
			envVars:      map[string]string{},
			wantAddress:  "localhost:8080",
			wantDBURI:    "",
			wantSecret:   "default-secret-change-in-production",
			wantTokenExp: 6 * time.Hour,
			wantTaxRate:  decimal.NewFromFloat(0.21),
		},
		{
			name:         "flags only",
			args:         []string{"cmd", "-a", "localhost:9090", "-d", "postgresql://db"},
			envVars:      map[string]string{},
			wantAddress:  "localhost:9090",
			wantDBURI:    "postgresql://db",
			wantSecret:   "default-secret-change-in-production",
			wantTokenExp: 6 * time.Hour,
			wantTaxRate:  decimal.NewFromFloat(0.21),
		},
		{
			name: "env overrides flags",
			args: []string{"cmd", "-a", "localhost:9090", "-d", "postgresql://flagdb"},
			envVars: map[string]string{
				"RUN_ADDRESS":      "localhost:7070",
				"DATABASE_URI":     "postgresql://envdb",
				"JWT_SECRET":       "env-secret",
				"TOKEN_EXPIRATION": "12h",
				"TAX_RATE":         "0.105",
			},
			wantAddress:  "localhost:7070",
			wantDBURI:    "postgresql://envdb",
			wantSecret:   "env-secret",
			wantTokenExp: 12 * time.Hour,
			wantTaxRate:  decimal.NewFromFloat(0.105),
		},
		{
			name: "invalid token expiration falls back",
			args: []string{"cmd"},
			envVars: map[string]string{
				"TOKEN_EXPIRATION": "invalid",
			},
			wantAddress:  "localhost:8080",
			wantDBURI:    "",
			wantSecret:   "default-secret-change-in-production",
			wantTokenExp: 6 * time.Hour,
			wantTaxRate:  decimal.NewFromFloat(0.21),
		},
		{
			name: "invalid tax rate falls back",
			args: []string{"cmd"},
			envVars: map[string]string{
				"TAX_RATE": "not-a-number",
			},
			wantAddress:  "localhost:8080",
			wantDBURI:    "",
			wantSecret:   "default-secret-change-in-production",
			wantTokenExp: 6 * time.Hour,
			wantTaxRate:  decimal.NewFromFloat(0.21),
		},
		{
			name: "negative tax rate falls back",
			args: []string{"cmd"},
			envVars: map[string]string{
				"TAX_RATE": "-0.5",
			},
			wantAddress:  "localhost:8080",
			wantDBURI:    "",
			wantSecret:   "default-secret-change-in-production",
			wantTokenExp: 6 * time.Hour,
			wantTaxRate:  decimal.NewFromFloat(0.21),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range envVars {
				os.Unsetenv(key)
			}
			for key, value := range tt.envVars {
				os.Setenv(key, value)
			}

			os.Args = tt.args
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

			cfg := Load()

			if cfg.RunAddress != tt.wantAddress {
				t.Errorf("RunAddress = %v, want %v", cfg.RunAddress, tt.wantAddress)
			}
			if cfg.DatabaseURI != tt.wantDBURI {
				t.Errorf("DatabaseURI = %v, want %v", cfg.DatabaseURI, tt.wantDBURI)
			}
			if cfg.JWTSecret != tt.wantSecret {
				t.Errorf("JWTSecret = %v, want %v", cfg.JWTSecret, tt.wantSecret)
			}
			if cfg.TokenExpiration != tt.wantTokenExp {
				t.Errorf("TokenExpiration = %v, want %v", cfg.TokenExpiration, tt.wantTokenExp)
			}
			if !cfg.TaxRate.Equal(tt.wantTaxRate) {
				t.Errorf("TaxRate = %v, want %v", cfg.TaxRate, tt.wantTaxRate)
			}
		})
	}
}

func TestLoadAdminPassword(t *testing.T) {
	original := os.Getenv("ADMIN_PASSWORD")
	defer func() {
		if original == "" {
			os.Unsetenv("ADMIN_PASSWORD")
		} else {
			os.Setenv("ADMIN_PASSWORD", original)
		}
	}()

	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	os.Setenv("ADMIN_PASSWORD", "bootstrap-secret")
	os.Args = []string{"cmd"}
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	cfg := Load()

	if cfg.AdminPassword != "bootstrap-secret" {
		t.Errorf("AdminPassword = %v, want bootstrap-secret", cfg.AdminPassword)
	}
}
