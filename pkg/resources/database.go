package resources

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/exaring/otelpgx"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func CreateDatabaseConnectionPool(ctx context.Context, cfg *Config) (*pgxpool.Pool, StopFn, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL("postgres"))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg(fmt.Sprintf("Unable to parse database connection string: %v", err))
		return nil, nil, fmt.Errorf("failed to parse database connection string: %w", err)
	}

	poolCfg.ConnConfig.Tracer = otelpgx.NewTracer()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg(fmt.Sprintf("Unable to connect to database: %v", err))
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		log.Ctx(ctx).Error().Err(err).Msg(fmt.Sprintf("Unable to ping to database: %v", err))

		return nil, nil, fmt.Errorf("failed to ping to database: %w", err)
	}

	return pool, newStopFn("database-pool", func(context.Context) error {
		pool.Close()
		return nil
	}), nil
}

// RunMigrations applies the embedded migrations that are still pending.
func RunMigrations(ctx context.Context, cfg *Config) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, cfg.DatabaseURL("pgx5"))
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Ctx(ctx).Info().Str("stage", "startup").Str("component", "migrations").
		Uint("version", version).Bool("dirty", dirty).Msg("migrations applied")

	return nil
}
