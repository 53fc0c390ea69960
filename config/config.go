/*
Package config loads server settings from the environment.

SOURCES (later wins):
  1. envDefault tags below
  2. .env file in the working directory, if present
  3. Process environment
  4. Command-line flags (-port, -db), applied by cmd/server

EXAMPLE .env:
  SERVER_PORT=8080
  DATABASE_PATH=./data/labor.db
  LOG_LEVEL=debug
  LOG_FORMAT=json
  CORS_ALLOWED_ORIGINS=http://localhost:5173,https://hr.example.com
  CALC_WEEKEND=saudi
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/warp/labor-engine/calendar"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            int `env:"PORT" envDefault:"8080"`
		ReadTimeout     int `env:"READ_TIMEOUT" envDefault:"15"`
		WriteTimeout    int `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int `env:"SHUTDOWN_TIMEOUT" envDefault:"30"`
	} `envPrefix:"SERVER_"`
	Database struct {
		Path string `env:"PATH" envDefault:"labor.db"` // ":memory:" allowed
	} `envPrefix:"DATABASE_"`
	Log struct {
		Level  string `env:"LEVEL" envDefault:"info"`
		Format string `env:"FORMAT" envDefault:"text"` // text | json
	} `envPrefix:"LOG_"`
	CORS struct {
		AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	} `envPrefix:"CORS_"`
	Calc struct {
		MonthDivisor float64 `env:"MONTH_DIVISOR" envDefault:"30"`
		HoursPerDay  float64 `env:"HOURS_PER_DAY" envDefault:"8"`
		Weekend      string  `env:"WEEKEND" envDefault:"saudi"` // saudi | western
	} `envPrefix:"CALC_"`
}

// Load reads an optional .env file and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return parse(env.Options{})
}

// FromMap parses settings from vars instead of the process environment.
func FromMap(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			// first error only, keeps startup logs readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT out of range: %d", c.Server.Port)
	}
	if c.Calc.MonthDivisor <= 0 {
		return fmt.Errorf("CALC_MONTH_DIVISOR must be positive: %v", c.Calc.MonthDivisor)
	}
	if c.Calc.HoursPerDay <= 0 {
		return fmt.Errorf("CALC_HOURS_PER_DAY must be positive: %v", c.Calc.HoursPerDay)
	}
	if s, ok := calendar.ParseWeekendScheme(c.Calc.Weekend); !ok || s == calendar.WeekendCustom {
		return fmt.Errorf("CALC_WEEKEND must be saudi or western: %q", c.Calc.Weekend)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

// Weekend is the default weekend for requests that don't name one.
func (c *Config) Weekend() calendar.WeekendConfig {
	if c.Calc.Weekend == string(calendar.WeekendWestern) {
		return calendar.WesternWeekend
	}
	return calendar.SaudiWeekend
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeout) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeout) * time.Second
}

func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Server.IdleTimeout) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeout) * time.Second
}

// ConfigureLogging applies the level and formatter to the standard logrus logger.
func (c *Config) ConfigureLogging() {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if c.Log.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339})
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
