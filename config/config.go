package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port                 string        `env:"PORT" envDefault:"3000"`
	DBDriver             string        `env:"DB_DRIVER" envDefault:"sqlite"`
	DBDSN                string        `env:"DB_DSN" envDefault:"payroll.db"`
	EmployeeServiceURL   string        `env:"EMPLOYEE_SERVICE_URL" envDefault:"http://employee-service"`
	DepartmentServiceURL string        `env:"DEPARTMENT_SERVICE_URL" envDefault:"http://department-service"`
	LookupTimeout        time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"5s"`
	// StrictNotFound reports collaborator transport failures as 404, the
	// way the legacy payroll endpoint did.
	StrictNotFound bool   `env:"PAYROLL_STRICT_NOT_FOUND" envDefault:"false"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	OTelEndpoint   string `env:"OTEL_ENDPOINT"`
}

var (
	AppConfig Config
)

// LoadConfig reads the nearest .env file, if any, and then parses the
// process environment into AppConfig.
func LoadConfig() error {
	if err := LoadEnvFile(".env"); err != nil {
		// a missing .env is normal outside local development
		warnf("%v, using environment variables", err)
	}

	cfg, err := Parse()
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Parse builds a Config from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.DBDriver) {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.EmployeeServiceURL == "" || c.DepartmentServiceURL == "" {
		return fmt.Errorf("collaborator service URLs are required")
	}
	if c.LookupTimeout <= 0 {
		return fmt.Errorf("LOOKUP_TIMEOUT must be positive, got %s", c.LookupTimeout)
	}
	return nil
}
