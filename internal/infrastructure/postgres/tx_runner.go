package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-classification-api/internal/application/usecase"
	"github.com/jhoicas/stock-classification-api/internal/domain/repository"
	"github.com/jhoicas/stock-classification-api/pkg/logger"
	"github.com/jhoicas/stock-classification-api/pkg/metrics"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL de solo lectura.
type TxRunner struct {
	pool    *pgxpool.Pool
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, log *logger.Logger, m *metrics.Metrics) *TxRunner {
	return &TxRunner{pool: pool, log: log, metrics: m}
}

// Run inicia una transacción, ejecuta fn con el repositorio atado a la tx y hace Commit o Rollback.
// El Rollback diferido también cubre un panic dentro de fn; tras Commit no tiene efecto.
func (r *TxRunner) Run(ctx context.Context, fn func(repo repository.ClassificationRepository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewClassificationRepository(tx, r.log, r.metrics)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
