package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PsqlConnectionStrategy func(context.Context, Config) (*pgxpool.Pool, error)

type PostgresRetrier struct {
	countRetries   uint
	delay          time.Duration
	connectionFunc PsqlConnectionStrategy
	logger         *slog.Logger
}

func NewPostgresRetrier(countRetries uint, delay time.Duration, connectionFunc PsqlConnectionStrategy, logger *slog.Logger) *PostgresRetrier {
	return &PostgresRetrier{
		countRetries:   countRetries,
		delay:          delay,
		connectionFunc: connectionFunc,
		logger:         logger,
	}
}

func (r *PostgresRetrier) newConnection(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	return retry.DoWithData(
		func() (*pgxpool.Pool, error) {
			return r.connectionFunc(ctx, cfg)
		},
		retry.Context(ctx),
		retry.Attempts(r.countRetries+1),
		retry.Delay(r.delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			r.logger.WarnContext(ctx, "database connection attempt failed", "attempt", n+1, "error", err)
		}),
	)
}

func NewPsqlConnectionWithRetrier(ctx context.Context, cfg Config, retrier *PostgresRetrier) (*pgxpool.Pool, error) {
	return retrier.newConnection(ctx, cfg)
}
