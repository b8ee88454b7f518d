package resources

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DB_USER", "planner")

		cfg, err := LoadConfig("event-planner", "1.0", filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)

		assert.Equal(t, "event-planner", cfg.Name)
		assert.Equal(t, "1.0", cfg.Version)
		assert.Equal(t, "localhost", cfg.HTTPHost)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, "6060", cfg.DebugPort)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.True(t, cfg.DBMigrate)
		assert.False(t, cfg.OtelEnabled)
		assert.Equal(t, "pt-BR", cfg.DefaultLocale)
		assert.Equal(t, "postgres://planner:@localhost:5432/events?sslmode=disable", cfg.DatabaseURL("postgres"))
	})

	t.Run("env file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(file, []byte("DB_USER=fromfile\nHTTP_PORT=9090\n"), 0o600))
		t.Setenv("DB_USER", "")
		require.NoError(t, os.Unsetenv("DB_USER"))
		t.Setenv("HTTP_PORT", "")
		require.NoError(t, os.Unsetenv("HTTP_PORT"))

		cfg, err := LoadConfig("event-planner", "1.0", file)
		require.NoError(t, err)
		assert.Equal(t, "fromfile", cfg.DBUser)
		assert.Equal(t, "9090", cfg.HTTPPort)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv("DB_USER", "planner")
		t.Setenv("LOG_FORMAT", "xml")

		_, err := LoadConfig("event-planner", "1.0", filepath.Join(t.TempDir(), "missing.env"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := Config{DBUser: "u", HTTPPort: "8080", LogLevel: "debug", LogFormat: "console"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "missing db user", mutate: func(c *Config) { c.DBUser = " " }},
		{name: "missing http port", mutate: func(c *Config) { c.HTTPPort = "" }},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := ConfigureLogger(&Config{Name: "svc", Version: "2", Env: "test", LogLevel: "warn", LogFormat: "json"}, &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"service":"svc"`)
	assert.Contains(t, buf.String(), `"message":"shown"`)
}
