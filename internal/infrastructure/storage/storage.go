// Package storage elige el adaptador (PostgreSQL o SQLite) según DATABASE_URL
// y expone el TxRunner que consumen los casos de uso.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-classification-api/internal/application/usecase"
	"github.com/jhoicas/stock-classification-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-classification-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/stock-classification-api/pkg/config"
	"github.com/jhoicas/stock-classification-api/pkg/logger"
	"github.com/jhoicas/stock-classification-api/pkg/metrics"
)

// Store agrupa la conexión abierta y el runner de sesiones.
type Store struct {
	Backend config.Backend
	Runner  usecase.TxRunner

	pool *pgxpool.Pool
	db   *sql.DB
}

// Open conecta al backend configurado.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger, m *metrics.Metrics) (*Store, error) {
	backend, err := cfg.DB.Backend()
	if err != nil {
		return nil, err
	}
	switch backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Debug, log)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &Store{Backend: backend, Runner: postgres.NewTxRunner(pool, log, m), pool: pool}, nil
	default:
		db, err := sqlite.Open(ctx, cfg.DB.SQLitePath(), cfg.DB.MaxConns)
		if err != nil {
			return nil, fmt.Errorf("apertura de SQLite: %w", err)
		}
		return &Store{Backend: backend, Runner: sqlite.NewTxRunner(db, cfg.App.Debug, log, m), db: db}, nil
	}
}

// EnsureSchema crea el esquema y las tablas si no existen (idempotente, sin datos).
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s.pool != nil {
		return postgres.EnsureSchema(ctx, s.pool)
	}
	return sqlite.EnsureSchema(ctx, s.db)
}

// Ping verifica que el almacenamiento responde.
func (s *Store) Ping(ctx context.Context) error {
	if s.pool != nil {
		return s.pool.Ping(ctx)
	}
	return s.db.PingContext(ctx)
}

// Close libera las conexiones.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
		return nil
	}
	return s.db.Close()
}
