// Package testutil provee una base SQLite temporal con datos de clasificación para las pruebas.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-classification-api/internal/infrastructure/sqlite"
)

// companyClassificationDDL emula la tabla externa; en producción la crea su dueño, no este servicio.
const companyClassificationDDL = `CREATE TABLE IF NOT EXISTS company_classification (
	company_id          INTEGER,
	company_name        VARCHAR(255) NOT NULL,
	comments            TEXT,
	market_cap_category VARCHAR(50),
	basic_ind_code      VARCHAR(20) NOT NULL
)`

// OpenSQLite abre una base en t.TempDir() con el esquema aplicado y la tabla externa creada.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "stock.db"), 4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlite.EnsureSchema(ctx, db))
	_, err = db.ExecContext(ctx, companyClassificationDDL)
	require.NoError(t, err)
	return db
}

// SeedScenario carga una sola rama: A/Tech → A1/Software → A1a/Apps → A1a1/Mobile Apps.
func SeedScenario(t testing.TB, db *sql.DB) {
	t.Helper()
	exec(t, db,
		`INSERT INTO macro_economic_sectors (mes_code, macro_economic_sector) VALUES ('A', 'Tech')`,
		`INSERT INTO sectors (sect_code, sector_name, mes_code) VALUES ('A1', 'Software', 'A')`,
		`INSERT INTO industries (ind_code, industry_name, sect_code) VALUES ('A1a', 'Apps', 'A1')`,
		`INSERT INTO basic_industries (basic_ind_code, basic_industry_name, definition, ind_code)
		 VALUES ('A1a1', 'Mobile Apps', 'Aplicaciones para teléfonos móviles', 'A1a')`,
	)
}

// SeedCatalog carga dos sectores macro, tres sectores, tres industrias y diez industrias básicas
// (seis bajo A1a, dos bajo A1b, dos bajo B1a), más tres empresas en A1a1.
// Las filas se insertan desordenadas para que las pruebas verifiquen el ORDER BY.
func SeedCatalog(t testing.TB, db *sql.DB) {
	t.Helper()
	exec(t, db,
		`INSERT INTO macro_economic_sectors (mes_code, macro_economic_sector) VALUES
			('B', 'Finance'), ('A', 'Tech')`,
		`INSERT INTO sectors (sect_code, sector_name, mes_code) VALUES
			('B1', 'Banking', 'B'), ('A2', 'Hardware', 'A'), ('A1', 'Software', 'A')`,
		`INSERT INTO industries (ind_code, industry_name, sect_code) VALUES
			('B1a', 'Retail Banking', 'B1'), ('A1b', 'Platforms', 'A1'), ('A1a', 'Apps', 'A1')`,
		`INSERT INTO basic_industries (basic_ind_code, basic_industry_name, definition, ind_code) VALUES
			('B1a2', 'Credit Cards', NULL, 'B1a'),
			('A1a6', 'Games', NULL, 'A1a'),
			('A1a1', 'Mobile Apps', 'Aplicaciones para teléfonos móviles', 'A1a'),
			('A1b2', 'Operating Systems', NULL, 'A1b'),
			('A1a3', 'Productivity', NULL, 'A1a'),
			('A1a2', 'Web Apps', 'Aplicaciones web', 'A1a'),
			('B1a1', 'Deposits', NULL, 'B1a'),
			('A1a5', 'Education', NULL, 'A1a'),
			('A1b1', 'Cloud', NULL, 'A1b'),
			('A1a4', 'Health', NULL, 'A1a')`,
		`INSERT INTO company_classification (company_id, company_name, comments, market_cap_category, basic_ind_code) VALUES
			(3, 'Zeta Corp', 'Listada en 2019', 'Small Cap', 'A1a1'),
			(1, 'Alpha Apps', NULL, 'Large Cap', 'A1a1'),
			(NULL, 'Mid Co', NULL, NULL, 'A1a1'),
			(7, 'Bank One', NULL, 'Large Cap', 'B1a1')`,
	)
}

// BasicIndustryCodes devuelve los códigos de SeedCatalog en orden ascendente.
func BasicIndustryCodes() []string {
	return []string{"A1a1", "A1a2", "A1a3", "A1a4", "A1a5", "A1a6", "A1b1", "A1b2", "B1a1", "B1a2"}
}

func exec(t testing.TB, db *sql.DB, stmts ...string) {
	t.Helper()
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err)
	}
}
