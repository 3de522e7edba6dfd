package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-classification-api/pkg/config"
	"github.com/jhoicas/stock-classification-api/pkg/logger"
)

// NewPool crea un pool de conexiones PostgreSQL usando la configuración de la app.
// Con debug activo cada sentencia SQL se registra en nivel debug.
func NewPool(ctx context.Context, cfg config.DBConfig, debug bool, log *logger.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	if debug && log != nil {
		poolConfig.ConnConfig.Tracer = &queryTracer{log: log.Named("sql")}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// queryTracer registra las sentencias ejecutadas (equivalente a "echo" de SQL).
type queryTracer struct {
	log *logger.Logger
}

type traceStartKey struct{}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	t.log.Debug().Str("sql", data.SQL).Int("args", len(data.Args)).Msg("query")
	return context.WithValue(ctx, traceStartKey{}, time.Now())
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	ev := t.log.Debug()
	if data.Err != nil {
		ev = t.log.Warn().Err(data.Err)
	}
	if start, ok := ctx.Value(traceStartKey{}).(time.Time); ok {
		ev = ev.Dur("elapsed", time.Since(start))
	}
	ev.Str("command", data.CommandTag.String()).Msg("query end")
}
