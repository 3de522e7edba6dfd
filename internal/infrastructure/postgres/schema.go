package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL crea el esquema classification y las cuatro tablas de la jerarquía.
// company_classification pertenece a un dueño externo y no se crea aquí.
var schemaDDL = []string{
	`CREATE SCHEMA IF NOT EXISTS classification`,
	`CREATE TABLE IF NOT EXISTS classification.macro_economic_sectors (
		mes_code              VARCHAR(20)  PRIMARY KEY,
		macro_economic_sector VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS classification.sectors (
		sect_code   VARCHAR(20)  PRIMARY KEY,
		sector_name VARCHAR(255) NOT NULL,
		mes_code    VARCHAR(20)  NOT NULL REFERENCES classification.macro_economic_sectors (mes_code)
	)`,
	`CREATE TABLE IF NOT EXISTS classification.industries (
		ind_code      VARCHAR(20)  PRIMARY KEY,
		industry_name VARCHAR(255) NOT NULL,
		sect_code     VARCHAR(20)  NOT NULL REFERENCES classification.sectors (sect_code)
	)`,
	`CREATE TABLE IF NOT EXISTS classification.basic_industries (
		basic_ind_code      VARCHAR(20)  PRIMARY KEY,
		basic_industry_name VARCHAR(255) NOT NULL,
		definition          TEXT,
		ind_code            VARCHAR(20)  NOT NULL REFERENCES classification.industries (ind_code)
	)`,
}

// EnsureSchema aplica el DDL de forma idempotente en una sola transacción. No inserta datos.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, stmt := range schemaDDL {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
