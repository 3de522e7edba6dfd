package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/stock-classification-api/internal/domain"
	"github.com/jhoicas/stock-classification-api/internal/domain/entity"
	"github.com/jhoicas/stock-classification-api/internal/domain/repository"
	"github.com/jhoicas/stock-classification-api/pkg/logger"
	"github.com/jhoicas/stock-classification-api/pkg/metrics"
)

var _ repository.ClassificationRepository = (*ClassificationRepo)(nil)

// ClassificationRepo implementación de ClassificationRepository sobre PostgreSQL (usable con pool o tx).
type ClassificationRepo struct {
	q       Querier
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewClassificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClassificationRepository(q Querier, log *logger.Logger, m *metrics.Metrics) *ClassificationRepo {
	if log == nil {
		log = logger.Nop()
	}
	return &ClassificationRepo{q: q, log: log.Named("postgres"), metrics: m}
}

// ListMacroEconomicSectors lista todos los sectores macroeconómicos ordenados por código.
func (r *ClassificationRepo) ListMacroEconomicSectors(ctx context.Context) ([]*entity.MacroEconomicSector, error) {
	query := `
		SELECT mes_code, macro_economic_sector
		FROM classification.macro_economic_sectors ORDER BY mes_code`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list macro economic sectors: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.MacroEconomicSector, 0)
	for rows.Next() {
		var m entity.MacroEconomicSector
		if err := rows.Scan(&m.MesCode, &m.MacroEconomicSector); err != nil {
			return nil, fmt.Errorf("scan macro economic sector: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// GetMacroEconomicSector obtiene un sector macroeconómico por código.
func (r *ClassificationRepo) GetMacroEconomicSector(ctx context.Context, mesCode string) (*entity.MacroEconomicSector, error) {
	query := `
		SELECT mes_code, macro_economic_sector
		FROM classification.macro_economic_sectors WHERE mes_code = $1`
	var m entity.MacroEconomicSector
	err := r.q.QueryRow(ctx, query, mesCode).Scan(&m.MesCode, &m.MacroEconomicSector)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get macro economic sector: %w", err)
	}
	return &m, nil
}

// ListSectors lista sectores ordenados por código; mesCode nil = sin filtro.
func (r *ClassificationRepo) ListSectors(ctx context.Context, mesCode *string) ([]*entity.Sector, error) {
	query := `
		SELECT sect_code, sector_name, mes_code
		FROM classification.sectors
		WHERE ($1::varchar IS NULL OR mes_code = $1) ORDER BY sect_code`
	rows, err := r.q.Query(ctx, query, mesCode)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Sector, 0)
	for rows.Next() {
		var s entity.Sector
		if err := rows.Scan(&s.SectCode, &s.SectorName, &s.MesCode); err != nil {
			return nil, fmt.Errorf("scan sector: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// GetSector obtiene un sector por código.
func (r *ClassificationRepo) GetSector(ctx context.Context, sectCode string) (*entity.Sector, error) {
	query := `
		SELECT sect_code, sector_name, mes_code
		FROM classification.sectors WHERE sect_code = $1`
	var s entity.Sector
	err := r.q.QueryRow(ctx, query, sectCode).Scan(&s.SectCode, &s.SectorName, &s.MesCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sector: %w", err)
	}
	return &s, nil
}

// ListIndustries lista industrias ordenadas por código; sectCode nil = sin filtro.
func (r *ClassificationRepo) ListIndustries(ctx context.Context, sectCode *string) ([]*entity.Industry, error) {
	query := `
		SELECT ind_code, industry_name, sect_code
		FROM classification.industries
		WHERE ($1::varchar IS NULL OR sect_code = $1) ORDER BY ind_code`
	rows, err := r.q.Query(ctx, query, sectCode)
	if err != nil {
		return nil, fmt.Errorf("list industries: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Industry, 0)
	for rows.Next() {
		var i entity.Industry
		if err := rows.Scan(&i.IndCode, &i.IndustryName, &i.SectCode); err != nil {
			return nil, fmt.Errorf("scan industry: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// GetIndustry obtiene una industria por código.
func (r *ClassificationRepo) GetIndustry(ctx context.Context, indCode string) (*entity.Industry, error) {
	query := `
		SELECT ind_code, industry_name, sect_code
		FROM classification.industries WHERE ind_code = $1`
	var i entity.Industry
	err := r.q.QueryRow(ctx, query, indCode).Scan(&i.IndCode, &i.IndustryName, &i.SectCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get industry: %w", err)
	}
	return &i, nil
}

// ListBasicIndustries devuelve la página pedida y el total del filtro (COUNT independiente de la ventana).
func (r *ClassificationRepo) ListBasicIndustries(ctx context.Context, filter repository.BasicIndustryFilter) ([]*entity.BasicIndustry, int, error) {
	countQuery := `
		SELECT COUNT(*) FROM classification.basic_industries
		WHERE ($1::varchar IS NULL OR ind_code = $1)`
	var total int
	if err := r.q.QueryRow(ctx, countQuery, filter.IndCode).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count basic industries: %w", err)
	}

	query := `
		SELECT basic_ind_code, basic_industry_name, definition, ind_code
		FROM classification.basic_industries
		WHERE ($1::varchar IS NULL OR ind_code = $1)
		ORDER BY basic_ind_code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, filter.IndCode, limitArg(filter.Limit), filter.Skip)
	if err != nil {
		return nil, 0, fmt.Errorf("list basic industries: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.BasicIndustry, 0)
	for rows.Next() {
		var b entity.BasicIndustry
		if err := rows.Scan(&b.BasicIndCode, &b.BasicIndustryName, &b.Definition, &b.IndCode); err != nil {
			return nil, 0, fmt.Errorf("scan basic industry: %w", err)
		}
		list = append(list, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list basic industries: %w", err)
	}
	return list, total, nil
}

// GetBasicIndustry obtiene una industria básica por código.
func (r *ClassificationRepo) GetBasicIndustry(ctx context.Context, basicIndCode string) (*entity.BasicIndustry, error) {
	query := `
		SELECT basic_ind_code, basic_industry_name, definition, ind_code
		FROM classification.basic_industries WHERE basic_ind_code = $1`
	var b entity.BasicIndustry
	err := r.q.QueryRow(ctx, query, basicIndCode).Scan(&b.BasicIndCode, &b.BasicIndustryName, &b.Definition, &b.IndCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get basic industry: %w", err)
	}
	return &b, nil
}

// FetchStocksByBasicIndCode consulta la tabla externa classification.company_classification.
func (r *ClassificationRepo) FetchStocksByBasicIndCode(ctx context.Context, basicIndCode string) ([]*entity.CompanyClassification, error) {
	query := `
		SELECT company_id, company_name, comments, market_cap_category
		FROM classification.company_classification
		WHERE basic_ind_code = $1
		ORDER BY company_name`
	rows, err := r.q.Query(ctx, query, basicIndCode)
	if err != nil {
		return nil, r.queryFailure(basicIndCode, err)
	}
	defer rows.Close()
	list := make([]*entity.CompanyClassification, 0)
	for rows.Next() {
		c := entity.CompanyClassification{BasicIndCode: basicIndCode}
		if err := rows.Scan(&c.CompanyID, &c.CompanyName, &c.Comments, &c.MarketCapCategory); err != nil {
			return nil, r.queryFailure(basicIndCode, err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, r.queryFailure(basicIndCode, err)
	}
	return list, nil
}

func (r *ClassificationRepo) queryFailure(basicIndCode string, err error) error {
	ev := r.log.Error().Err(err).Str("basic_ind_code", basicIndCode)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		ev = ev.Str("sqlstate", pgErr.Code)
		if pgErr.Code == "42P01" { // undefined_table
			ev = ev.Str("hint", "la tabla externa company_classification no existe")
		}
	}
	ev.Msg("falló la consulta de empresas por industria básica")
	r.metrics.ObserveQueryFailure("fetch_stocks_by_basic_ind_code")
	return domain.NewCompanyClassificationQueryError(basicIndCode, err)
}

// limitArg traduce "sin límite" a NULL (LIMIT NULL equivale a LIMIT ALL).
func limitArg(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}
