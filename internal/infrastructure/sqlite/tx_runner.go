package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/stock-classification-api/internal/application/usecase"
	"github.com/jhoicas/stock-classification-api/internal/domain/repository"
	"github.com/jhoicas/stock-classification-api/pkg/logger"
	"github.com/jhoicas/stock-classification-api/pkg/metrics"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db      *sql.DB
	debug   bool
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewTxRunner construye el runner. Con debug activo cada sentencia se registra en nivel debug.
func NewTxRunner(db *sql.DB, debug bool, log *logger.Logger, m *metrics.Metrics) *TxRunner {
	if log == nil {
		log = logger.Nop()
	}
	return &TxRunner{db: db, debug: debug, log: log, metrics: m}
}

// Run abre la sesión, ejecuta fn y hace Commit; ante error o panic el Rollback diferido libera la tx.
func (r *TxRunner) Run(ctx context.Context, fn func(repo repository.ClassificationRepository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var q Querier = tx
	if r.debug {
		q = debugQuerier{q: tx, log: r.log.Named("sql")}
	}
	if err := fn(NewClassificationRepository(q, r.log, r.metrics)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
