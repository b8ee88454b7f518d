package resources

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var (
	_ DBInstance = (*pgxpool.Pool)(nil)
)

// DBInstance is the subset of *pgxpool.Pool the repositories use.
type DBInstance interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StopFn releases a resource, giving it at most timeout to finish.
type StopFn func(ctx context.Context, timeout time.Duration)

func newStopFn(name string, stop func(ctx context.Context) error) StopFn {
	return func(ctx context.Context, timeout time.Duration) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()

		err := stop(ctx)
		if err != nil {
			log.Ctx(ctx).Error().Str("stage", "shut down").Str("component", name).Err(err).Msg("failed to stop")
			return
		}

		log.Ctx(ctx).Info().Str("stage", "shut down").Str("component", name).Msg("stopped")
	}
}
