package http_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-classification-api/internal/application/dto"
	"github.com/jhoicas/stock-classification-api/internal/application/usecase"
	"github.com/jhoicas/stock-classification-api/internal/domain/repository"
	"github.com/jhoicas/stock-classification-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/stock-classification-api/internal/interfaces/http"
	"github.com/jhoicas/stock-classification-api/internal/testutil"
	"github.com/jhoicas/stock-classification-api/pkg/config"
	"github.com/jhoicas/stock-classification-api/pkg/metrics"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testOrigin = "http://localhost:5173"

func testConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Env: "test", Name: "stock-classification-backend"},
		HTTP: config.HTTPConfig{Host: "127.0.0.1", Port: 8000, CORSOrigin: testOrigin},
	}
}

// buildTestApp arma la aplicación completa sobre un TxRunner dado.
func buildTestApp(runner usecase.TxRunner, m *metrics.Metrics) *fiber.App {
	deps := apphttp.RouterDeps{ClassificationUC: usecase.NewClassificationUseCase(runner)}
	return apphttp.NewApp(testConfig(), deps, nil, m)
}

func appWith(t *testing.T, seed func(testing.TB, *sql.DB)) *fiber.App {
	t.Helper()
	db := testutil.OpenSQLite(t)
	seed(t, db)
	return buildTestApp(sqlite.NewTxRunner(db, false, nil, nil), nil)
}

// doGet ejecuta un GET y devuelve estado y cuerpo.
func doGet(t *testing.T, app *fiber.App, target string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

// failingRunner simula un almacenamiento caído.
type failingRunner struct{ err error }

func (f failingRunner) Run(context.Context, func(repository.ClassificationRepository) error) error {
	return f.err
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario de una sola rama
// ──────────────────────────────────────────────────────────────────────────────

func TestIndustriasFiltradasPorSector(t *testing.T) {
	app := appWith(t, testutil.SeedScenario)

	status, body := doGet(t, app, "/api/classification/industries?sect_code=A1")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"data":[{"ind_code":"A1a","industry_name":"Apps","sect_code":"A1"}],"count":1}`, string(body))
}

func TestIndustriaBasicaPorCodigo(t *testing.T) {
	app := appWith(t, testutil.SeedScenario)

	status, body := doGet(t, app, "/api/classification/basic-industries/A1a1")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{
		"basic_ind_code":"A1a1",
		"basic_industry_name":"Mobile Apps",
		"definition":"Aplicaciones para teléfonos móviles",
		"ind_code":"A1a"
	}`, string(body))

	status, body = doGet(t, app, "/api/classification/basic-industries/ZZZZ")
	assert.Equal(t, fiber.StatusNotFound, status)
	errResp := decode[dto.ErrorResponse](t, body)
	assert.Equal(t, "NOT_FOUND", errResp.Code)
	assert.Equal(t, "industria básica no encontrada", errResp.Message)
}

func TestGetters_404PorEntidad(t *testing.T) {
	app := appWith(t, testutil.SeedScenario)

	cases := map[string]string{
		"/api/classification/macro-economic-sectors/ZZ": "sector macroeconómico no encontrado",
		"/api/classification/sectors/ZZ":                "sector no encontrado",
		"/api/classification/industries/ZZ":             "industria no encontrada",
		"/api/classification/basic-industries/ZZ/stocks": "industria básica no encontrada",
	}
	for target, msg := range cases {
		status, body := doGet(t, app, target)
		assert.Equal(t, fiber.StatusNotFound, status, target)
		assert.Equal(t, msg, decode[dto.ErrorResponse](t, body).Message, target)
	}

	status, body := doGet(t, app, "/api/classification/macro-economic-sectors/A")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"mes_code":"A","macro_economic_sector":"Tech"}`, string(body))
}

func TestGetters_CodigoConCaracteresEscapados(t *testing.T) {
	db := testutil.OpenSQLite(t)
	_, err := db.Exec(`INSERT INTO macro_economic_sectors (mes_code, macro_economic_sector) VALUES ('A B', 'Spaced'), ('Ñ1', 'Acentuado')`)
	require.NoError(t, err)
	app := buildTestApp(sqlite.NewTxRunner(db, false, nil, nil), nil)

	status, body := doGet(t, app, "/api/classification/macro-economic-sectors/A%20B")
	assert.Equal(t, fiber.StatusOK, status, string(body))
	assert.JSONEq(t, `{"mes_code":"A B","macro_economic_sector":"Spaced"}`, string(body))

	status, body = doGet(t, app, "/api/classification/macro-economic-sectors/%C3%911")
	assert.Equal(t, fiber.StatusOK, status, string(body))
	assert.JSONEq(t, `{"mes_code":"Ñ1","macro_economic_sector":"Acentuado"}`, string(body))
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtros y paginación
// ──────────────────────────────────────────────────────────────────────────────

func TestSectores_FiltroAusenteVacioYPresente(t *testing.T) {
	app := appWith(t, testutil.SeedCatalog)

	_, body := doGet(t, app, "/api/classification/sectors")
	assert.Equal(t, 3, decode[dto.SectorListResponse](t, body).Count)

	_, body = doGet(t, app, "/api/classification/sectors?mes_code=B")
	out := decode[dto.SectorListResponse](t, body)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "B1", out.Data[0].SectCode)

	// Un filtro vacío es un filtro por igualdad, no "sin filtro".
	status, body := doGet(t, app, "/api/classification/sectors?mes_code=")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"data":[],"count":0}`, string(body))
}

func TestIndustriasBasicas_Paginacion(t *testing.T) {
	app := appWith(t, testutil.SeedCatalog)

	status, body := doGet(t, app, "/api/classification/basic-industries")
	assert.Equal(t, fiber.StatusOK, status)
	page := decode[dto.BasicIndustryPageResponse](t, body)
	assert.Equal(t, 10, page.Count)
	assert.Equal(t, 10, page.Total)

	_, body = doGet(t, app, "/api/classification/basic-industries?ind_code=A1a&skip=2&limit=3")
	page = decode[dto.BasicIndustryPageResponse](t, body)
	assert.Equal(t, 3, page.Count)
	assert.Equal(t, 6, page.Total)
	assert.Equal(t, "A1a3", page.Data[0].BasicIndCode)
	assert.Nil(t, page.Data[0].Definition)

	_, body = doGet(t, app, "/api/classification/basic-industries?skip=50")
	page = decode[dto.BasicIndustryPageResponse](t, body)
	assert.NotNil(t, page.Data)
	assert.Equal(t, 0, page.Count)
	assert.Equal(t, 10, page.Total)
}

func TestIndustriasBasicas_PaginacionInvalida(t *testing.T) {
	runner := &countingRunner{}
	app := buildTestApp(runner, nil)

	for _, q := range []string{"skip=-1", "limit=0", "limit=201", "limit=abc", "skip=1.5", "limit=", "skip="} {
		status, body := doGet(t, app, "/api/classification/basic-industries?"+q)
		assert.Equal(t, fiber.StatusBadRequest, status, q)
		assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, body).Code, q)
	}
	assert.Zero(t, runner.sessions, "la validación ocurre antes de abrir sesión")
}

type countingRunner struct{ sessions int }

func (r *countingRunner) Run(context.Context, func(repository.ClassificationRepository) error) error {
	r.sessions++
	return nil
}

func TestDropdownData(t *testing.T) {
	app := appWith(t, testutil.SeedCatalog)

	status, body := doGet(t, app, "/api/classification/dropdown-data")
	assert.Equal(t, fiber.StatusOK, status)
	out := decode[dto.DropdownDataResponse](t, body)
	assert.Len(t, out.MacroEconomicSectors, 2)
	assert.Len(t, out.Sectors, 3)
	assert.Len(t, out.Industries, 3)
	assert.Len(t, out.BasicIndustries, 10)
	assert.Equal(t, "A", out.MacroEconomicSectors[0].MesCode)
}

func TestStocks_OrdenadasPorNombre(t *testing.T) {
	app := appWith(t, testutil.SeedCatalog)

	status, body := doGet(t, app, "/api/classification/basic-industries/A1a1/stocks")
	assert.Equal(t, fiber.StatusOK, status)
	out := decode[dto.CompanyClassificationListResponse](t, body)
	require.Equal(t, 3, out.Count)
	assert.Equal(t, "Alpha Apps", out.Data[0].CompanyName)
	assert.Equal(t, "Zeta Corp", out.Data[2].CompanyName)
	assert.Nil(t, out.Data[1].CompanyID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores 500
// ──────────────────────────────────────────────────────────────────────────────

func TestFalloDeAlmacenamiento_500Generico(t *testing.T) {
	app := buildTestApp(failingRunner{err: errors.New("connection refused: 10.0.0.5:5432")}, nil)

	status, body := doGet(t, app, "/api/classification/sectors")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	errResp := decode[dto.ErrorResponse](t, body)
	assert.Equal(t, "INTERNAL", errResp.Code)
	assert.NotContains(t, errResp.Message, "10.0.0.5", "no se filtra el detalle interno")
}

func TestStocks_TablaExternaAusente(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, t.TempDir()+"/sin_empresas.db", 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.EnsureSchema(ctx, db))
	testutil.SeedScenario(t, db)

	app := buildTestApp(sqlite.NewTxRunner(db, false, nil, nil), nil)
	status, body := doGet(t, app, "/api/classification/basic-industries/A1a1/stocks")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "COMPANY_CLASSIFICATION_QUERY", decode[dto.ErrorResponse](t, body).Code)
}

func TestPanicYRutaInexistente(t *testing.T) {
	app := buildTestApp(&countingRunner{}, nil)
	app.Get("/boom", func(*fiber.Ctx) error { panic("fallo inesperado") })

	status, body := doGet(t, app, "/boom")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", decode[dto.ErrorResponse](t, body).Code)

	status, body = doGet(t, app, "/api/classification/nada")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, body).Code)
}
