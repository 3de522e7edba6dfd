// Package sqlite implementa los puertos de lectura sobre un archivo SQLite local
// (driver puro Go modernc.org/sqlite). Es el almacenamiento por defecto.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // driver sqlite puro Go
)

const driverName = "sqlite"

// Open abre (o crea) la base SQLite en path. ":memory:" usa una única conexión
// para que todas las sesiones vean la misma base.
func Open(ctx context.Context, path string, maxConns int) (*sql.DB, error) {
	if path == "" {
		path = "stock.db"
	}
	memory := path == ":memory:" || strings.Contains(path, "mode=memory")
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open(driverName, withPragmas(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if memory || maxConns < 1 {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// withPragmas activa claves foráneas y un busy_timeout para lectores concurrentes.
func withPragmas(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
