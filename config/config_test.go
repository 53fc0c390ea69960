package config_test

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/labor-engine/calendar"
	"github.com/warp/labor-engine/config"
)

func TestFromMap_Defaults(t *testing.T) {
	cfg, err := config.FromMap(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "labor.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 30.0, cfg.Calc.MonthDivisor)
	assert.Equal(t, calendar.SaudiWeekend, cfg.Weekend())
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout())
}

func TestFromMap_Overrides(t *testing.T) {
	cfg, err := config.FromMap(map[string]string{
		"SERVER_PORT":          "3000",
		"DATABASE_PATH":        ":memory:",
		"LOG_FORMAT":           "json",
		"CORS_ALLOWED_ORIGINS": "http://a.test,http://b.test",
		"CALC_MONTH_DIVISOR":   "26",
		"CALC_WEEKEND":         "western",
	})
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 26.0, cfg.Calc.MonthDivisor)
	assert.Equal(t, calendar.WesternWeekend, cfg.Weekend())
}

func TestFromMap_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"port not a number": {"SERVER_PORT": "http"},
		"port out of range": {"SERVER_PORT": "70000"},
		"zero divisor":      {"CALC_MONTH_DIVISOR": "0"},
		"custom weekend":    {"CALC_WEEKEND": "custom"},
		"unknown weekend":   {"CALC_WEEKEND": "lunar"},
		"bad log level":     {"LOG_LEVEL": "loud"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.FromMap(vars)
			assert.Error(t, err)
		})
	}
}

func TestConfigureLogging(t *testing.T) {
	defer func() {
		log.SetLevel(log.InfoLevel)
		log.SetFormatter(&log.TextFormatter{})
	}()

	cfg, err := config.FromMap(map[string]string{"LOG_LEVEL": "debug", "LOG_FORMAT": "json"})
	require.NoError(t, err)
	cfg.ConfigureLogging()

	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)
}
