package resources

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Name          string
	Version       string
	Env           string
	HTTPHost      string
	HTTPPort      string
	DebugPort     string
	LogLevel      string
	LogFormat     string
	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	DBSSLMode     string
	DBMigrate     bool
	OtelEnabled   bool
	OtelEndpoint  string
	DefaultLocale string
}

var ErrInvalidConfig = errors.New("invalid config")

// LoadConfig reads the environment, with an optional .env file, over the defaults.
func LoadConfig(name string, version string, files ...string) (*Config, error) {
	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_NAME", name)
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("HTTP_HOST", "localhost")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DEBUG_PORT", "6060")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "events")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MIGRATE", true)
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_ENDPOINT", "localhost:4317")
	v.SetDefault("DEFAULT_LOCALE", "pt-BR")

	cfg := &Config{
		Name:          v.GetString("APP_NAME"),
		Version:       version,
		Env:           v.GetString("APP_ENV"),
		HTTPHost:      v.GetString("HTTP_HOST"),
		HTTPPort:      v.GetString("HTTP_PORT"),
		DebugPort:     v.GetString("DEBUG_PORT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBName:        v.GetString("DB_NAME"),
		DBSSLMode:     v.GetString("DB_SSLMODE"),
		DBMigrate:     v.GetBool("DB_MIGRATE"),
		OtelEnabled:   v.GetBool("OTEL_ENABLED"),
		OtelEndpoint:  v.GetString("OTEL_ENDPOINT"),
		DefaultLocale: v.GetString("DEFAULT_LOCALE"),
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBUser) == "" {
		return fmt.Errorf("%w: DB_USER is required", ErrInvalidConfig)
	}

	if strings.TrimSpace(c.HTTPPort) == "" {
		return fmt.Errorf("%w: HTTP_PORT is required", ErrInvalidConfig)
	}

	_, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: LOG_LEVEL %q: %w", ErrInvalidConfig, c.LogLevel, err)
	}

	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("%w: LOG_FORMAT must be json or console, got %q", ErrInvalidConfig, c.LogFormat)
	}

	return nil
}

func (c *Config) DatabaseURL(scheme string) string {
	//nolint:nosprintfhostport
	return fmt.Sprintf("%s://%s:%s@%s:%s/%s?sslmode=%s",
		scheme, c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// ConfigureLogger replaces the global zerolog logger and returns it.
func ConfigureLogger(cfg *Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if cfg.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	log.Logger = zerolog.New(out).With().
		Timestamp().
		Str("service", cfg.Name).
		Str("version", cfg.Version).
		Str("env", cfg.Env).
		Logger()

	return log.Logger
}
