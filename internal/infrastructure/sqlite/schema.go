package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLite no tiene esquemas: las tablas viven sin prefijo. company_classification no se crea aquí.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS macro_economic_sectors (
		mes_code              VARCHAR(20)  PRIMARY KEY,
		macro_economic_sector VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sectors (
		sect_code   VARCHAR(20)  PRIMARY KEY,
		sector_name VARCHAR(255) NOT NULL,
		mes_code    VARCHAR(20)  NOT NULL REFERENCES macro_economic_sectors (mes_code)
	)`,
	`CREATE TABLE IF NOT EXISTS industries (
		ind_code      VARCHAR(20)  PRIMARY KEY,
		industry_name VARCHAR(255) NOT NULL,
		sect_code     VARCHAR(20)  NOT NULL REFERENCES sectors (sect_code)
	)`,
	`CREATE TABLE IF NOT EXISTS basic_industries (
		basic_ind_code      VARCHAR(20)  PRIMARY KEY,
		basic_industry_name VARCHAR(255) NOT NULL,
		definition          TEXT,
		ind_code            VARCHAR(20)  NOT NULL REFERENCES industries (ind_code)
	)`,
}

// EnsureSchema crea las tablas si no existen. No inserta datos.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range schemaDDL {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
