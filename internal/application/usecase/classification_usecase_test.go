package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-classification-api/internal/application/dto"
	"github.com/jhoicas/stock-classification-api/internal/application/usecase"
	"github.com/jhoicas/stock-classification-api/internal/domain"
	"github.com/jhoicas/stock-classification-api/internal/domain/entity"
	"github.com/jhoicas/stock-classification-api/internal/domain/repository"
	"github.com/jhoicas/stock-classification-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/stock-classification-api/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

// fakeRunner cuenta sesiones y entrega siempre el mismo repositorio.
type fakeRunner struct {
	repo     repository.ClassificationRepository
	sessions int
	lastErr  error
}

func (f *fakeRunner) Run(_ context.Context, fn func(repository.ClassificationRepository) error) error {
	f.sessions++
	f.lastErr = fn(f.repo)
	return f.lastErr
}

// brokenRepo falla en todas las lecturas salvo GetBasicIndustry.
type brokenRepo struct {
	repository.ClassificationRepository
	err error
}

func (b brokenRepo) ListSectors(context.Context, *string) ([]*entity.Sector, error) {
	return nil, b.err
}

func (b brokenRepo) GetBasicIndustry(_ context.Context, code string) (*entity.BasicIndustry, error) {
	return &entity.BasicIndustry{BasicIndCode: code, BasicIndustryName: "x", IndCode: "y"}, nil
}

func (b brokenRepo) FetchStocksByBasicIndCode(_ context.Context, code string) ([]*entity.CompanyClassification, error) {
	return nil, domain.NewCompanyClassificationQueryError(code, b.err)
}

func newCatalogUseCase(t *testing.T) *usecase.ClassificationUseCase {
	t.Helper()
	db := testutil.OpenSQLite(t)
	testutil.SeedCatalog(t, db)
	return usecase.NewClassificationUseCase(sqlite.NewTxRunner(db, false, nil, nil))
}

func ptr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Casos
// ──────────────────────────────────────────────────────────────────────────────

func TestDropdownData_CoincideConListadosSinFiltro(t *testing.T) {
	ctx := context.Background()
	uc := newCatalogUseCase(t)

	dd, err := uc.DropdownData(ctx)
	require.NoError(t, err)

	mes, err := uc.ListMacroEconomicSectors(ctx)
	require.NoError(t, err)
	sectors, err := uc.ListSectors(ctx, nil)
	require.NoError(t, err)
	industries, err := uc.ListIndustries(ctx, nil)
	require.NoError(t, err)
	basics, err := uc.ListBasicIndustries(ctx, nil, dto.PageRequest{Skip: 0, Limit: dto.MaxLimit})
	require.NoError(t, err)

	assert.Equal(t, mes.Data, dd.MacroEconomicSectors)
	assert.Equal(t, sectors.Data, dd.Sectors)
	assert.Equal(t, industries.Data, dd.Industries)
	assert.Equal(t, basics.Data, dd.BasicIndustries)
	assert.Len(t, dd.BasicIndustries, 10)
}

func TestGetters_NotFoundConMensajePorEntidad(t *testing.T) {
	ctx := context.Background()
	uc := newCatalogUseCase(t)

	cases := map[string]func() error{
		"sector macroeconómico no encontrado": func() error { _, err := uc.GetMacroEconomicSector(ctx, "ZZ"); return err },
		"sector no encontrado":                func() error { _, err := uc.GetSector(ctx, "ZZ"); return err },
		"industria no encontrada":             func() error { _, err := uc.GetIndustry(ctx, "ZZ"); return err },
		"industria básica no encontrada":      func() error { _, err := uc.GetBasicIndustry(ctx, "ZZZZ"); return err },
	}
	for msg, call := range cases {
		err := call()
		require.Error(t, err, msg)
		assert.True(t, errors.Is(err, domain.ErrNotFound), msg)
		assert.Equal(t, msg, err.Error())
	}

	got, err := uc.GetIndustry(ctx, "A1a")
	require.NoError(t, err)
	assert.Equal(t, &dto.IndustryResponse{IndCode: "A1a", IndustryName: "Apps", SectCode: "A1"}, got)
}

func TestListBasicIndustries_ValidaPaginaSinAbrirSesion(t *testing.T) {
	runner := &fakeRunner{}
	uc := usecase.NewClassificationUseCase(runner)

	_, err := uc.ListBasicIndustries(context.Background(), nil, dto.PageRequest{Skip: 0, Limit: 201})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.ListBasicIndustries(context.Background(), nil, dto.PageRequest{Skip: -1, Limit: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, runner.sessions)
}

func TestListBasicIndustries_SegundaPagina(t *testing.T) {
	uc := newCatalogUseCase(t)

	out, err := uc.ListBasicIndustries(context.Background(), nil, dto.PageRequest{Skip: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, 10, out.Total)
	assert.Equal(t, "A1a2", out.Data[0].BasicIndCode)
}

func TestListSectors_ErrorDeAlmacenamientoSePropaga(t *testing.T) {
	storageErr := errors.New("database is locked")
	runner := &fakeRunner{repo: brokenRepo{err: storageErr}}
	uc := usecase.NewClassificationUseCase(runner)

	out, err := uc.ListSectors(context.Background(), ptr("A"))
	assert.Nil(t, out, "sin respuesta parcial")
	assert.ErrorIs(t, err, storageErr)
	assert.Equal(t, 1, runner.sessions)
	assert.ErrorIs(t, runner.lastErr, storageErr, "la sesión recibe el error para hacer rollback")
}

func TestListStocksByBasicIndustry(t *testing.T) {
	ctx := context.Background()
	uc := newCatalogUseCase(t)

	out, err := uc.ListStocksByBasicIndustry(ctx, "A1a1")
	require.NoError(t, err)
	assert.Equal(t, 3, out.Count)
	assert.Equal(t, "Alpha Apps", out.Data[0].CompanyName)

	out, err = uc.ListStocksByBasicIndustry(ctx, "A1a2")
	require.NoError(t, err)
	assert.Equal(t, 0, out.Count)
	assert.NotNil(t, out.Data)

	_, err = uc.ListStocksByBasicIndustry(ctx, "ZZZZ")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	broken := usecase.NewClassificationUseCase(&fakeRunner{repo: brokenRepo{err: errors.New("timeout")}})
	_, err = broken.ListStocksByBasicIndustry(ctx, "A1a1")
	assert.ErrorIs(t, err, domain.ErrCompanyClassificationQuery)
}
