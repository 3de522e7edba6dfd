package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jhoicas/stock-classification-api/pkg/logger"
)

// Querier es el subconjunto común de *sql.DB y *sql.Tx que usan los repositorios.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// debugQuerier registra cada sentencia antes de delegarla.
type debugQuerier struct {
	q   Querier
	log *logger.Logger
}

func (d debugQuerier) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := d.q.ExecContext(ctx, query, args...)
	d.trace(query, len(args), start, err)
	return res, err
}

func (d debugQuerier) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.q.QueryContext(ctx, query, args...)
	d.trace(query, len(args), start, err)
	return rows, err
}

func (d debugQuerier) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := d.q.QueryRowContext(ctx, query, args...)
	d.trace(query, len(args), start, row.Err())
	return row
}

func (d debugQuerier) trace(query string, nargs int, start time.Time, err error) {
	ev := d.log.Debug()
	if err != nil {
		ev = d.log.Warn().Err(err)
	}
	ev.Str("sql", query).Int("args", nargs).Dur("elapsed", time.Since(start)).Msg("query")
}
