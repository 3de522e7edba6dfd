package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/stock-classification-api/internal/domain"
	"github.com/jhoicas/stock-classification-api/internal/domain/entity"
	"github.com/jhoicas/stock-classification-api/internal/domain/repository"
	"github.com/jhoicas/stock-classification-api/pkg/logger"
	"github.com/jhoicas/stock-classification-api/pkg/metrics"
)

var _ repository.ClassificationRepository = (*ClassificationRepo)(nil)

// ClassificationRepo implementación de ClassificationRepository sobre SQLite (usable con db o tx).
type ClassificationRepo struct {
	q       Querier
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewClassificationRepository construye el adaptador. Pasar db o tx (Querier).
func NewClassificationRepository(q Querier, log *logger.Logger, m *metrics.Metrics) *ClassificationRepo {
	if log == nil {
		log = logger.Nop()
	}
	return &ClassificationRepo{q: q, log: log.Named("sqlite"), metrics: m}
}

// ListMacroEconomicSectors lista todos los sectores macroeconómicos ordenados por código.
func (r *ClassificationRepo) ListMacroEconomicSectors(ctx context.Context) ([]*entity.MacroEconomicSector, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT mes_code, macro_economic_sector
		FROM macro_economic_sectors ORDER BY mes_code`)
	if err != nil {
		return nil, fmt.Errorf("list macro economic sectors: %w", err)
	}
	defer func() { _ = rows.Close() }()
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
	var m entity.MacroEconomicSector
	err := r.q.QueryRowContext(ctx, `
		SELECT mes_code, macro_economic_sector
		FROM macro_economic_sectors WHERE mes_code = ?`, mesCode).Scan(&m.MesCode, &m.MacroEconomicSector)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get macro economic sector: %w", err)
	}
	return &m, nil
}

// ListSectors lista sectores ordenados por código; mesCode nil = sin filtro.
func (r *ClassificationRepo) ListSectors(ctx context.Context, mesCode *string) ([]*entity.Sector, error) {
	arg := nullable(mesCode)
	rows, err := r.q.QueryContext(ctx, `
		SELECT sect_code, sector_name, mes_code
		FROM sectors
		WHERE (? IS NULL OR mes_code = ?) ORDER BY sect_code`, arg, arg)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	defer func() { _ = rows.Close() }()
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
	var s entity.Sector
	err := r.q.QueryRowContext(ctx, `
		SELECT sect_code, sector_name, mes_code
		FROM sectors WHERE sect_code = ?`, sectCode).Scan(&s.SectCode, &s.SectorName, &s.MesCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sector: %w", err)
	}
	return &s, nil
}

// ListIndustries lista industrias ordenadas por código; sectCode nil = sin filtro.
func (r *ClassificationRepo) ListIndustries(ctx context.Context, sectCode *string) ([]*entity.Industry, error) {
	arg := nullable(sectCode)
	rows, err := r.q.QueryContext(ctx, `
		SELECT ind_code, industry_name, sect_code
		FROM industries
		WHERE (? IS NULL OR sect_code = ?) ORDER BY ind_code`, arg, arg)
	if err != nil {
		return nil, fmt.Errorf("list industries: %w", err)
	}
	defer func() { _ = rows.Close() }()
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
	var i entity.Industry
	err := r.q.QueryRowContext(ctx, `
		SELECT ind_code, industry_name, sect_code
		FROM industries WHERE ind_code = ?`, indCode).Scan(&i.IndCode, &i.IndustryName, &i.SectCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get industry: %w", err)
	}
	return &i, nil
}

// ListBasicIndustries devuelve la página pedida y el total del filtro (COUNT independiente de la ventana).
func (r *ClassificationRepo) ListBasicIndustries(ctx context.Context, filter repository.BasicIndustryFilter) ([]*entity.BasicIndustry, int, error) {
	arg := nullable(filter.IndCode)

	var total int
	if err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM basic_industries
		WHERE (? IS NULL OR ind_code = ?)`, arg, arg).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count basic industries: %w", err)
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT basic_ind_code, basic_industry_name, definition, ind_code
		FROM basic_industries
		WHERE (? IS NULL OR ind_code = ?)
		ORDER BY basic_ind_code LIMIT ? OFFSET ?`, arg, arg, limitArg(filter.Limit), filter.Skip)
	if err != nil {
		return nil, 0, fmt.Errorf("list basic industries: %w", err)
	}
	defer func() { _ = rows.Close() }()
	list := make([]*entity.BasicIndustry, 0)
	for rows.Next() {
		b, err := scanBasicIndustry(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list basic industries: %w", err)
	}
	return list, total, nil
}

// GetBasicIndustry obtiene una industria básica por código.
func (r *ClassificationRepo) GetBasicIndustry(ctx context.Context, basicIndCode string) (*entity.BasicIndustry, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT basic_ind_code, basic_industry_name, definition, ind_code
		FROM basic_industries WHERE basic_ind_code = ?`, basicIndCode)
	b, err := scanBasicIndustry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// FetchStocksByBasicIndCode consulta la tabla externa company_classification.
func (r *ClassificationRepo) FetchStocksByBasicIndCode(ctx context.Context, basicIndCode string) ([]*entity.CompanyClassification, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT company_id, company_name, comments, market_cap_category
		FROM company_classification
		WHERE basic_ind_code = ?
		ORDER BY company_name`, basicIndCode)
	if err != nil {
		return nil, r.queryFailure(basicIndCode, err)
	}
	defer func() { _ = rows.Close() }()
	list := make([]*entity.CompanyClassification, 0)
	for rows.Next() {
		var (
			id                  sql.NullInt64
			comments, marketCap sql.NullString
		)
		c := entity.CompanyClassification{BasicIndCode: basicIndCode}
		if err := rows.Scan(&id, &c.CompanyName, &comments, &marketCap); err != nil {
			return nil, r.queryFailure(basicIndCode, err)
		}
		if id.Valid {
			c.CompanyID = &id.Int64
		}
		c.Comments = stringPtr(comments)
		c.MarketCapCategory = stringPtr(marketCap)
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, r.queryFailure(basicIndCode, err)
	}
	return list, nil
}

func (r *ClassificationRepo) queryFailure(basicIndCode string, err error) error {
	r.log.Error().Err(err).Str("basic_ind_code", basicIndCode).
		Msg("falló la consulta de empresas por industria básica")
	r.metrics.ObserveQueryFailure("fetch_stocks_by_basic_ind_code")
	return domain.NewCompanyClassificationQueryError(basicIndCode, err)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBasicIndustry(s scanner) (*entity.BasicIndustry, error) {
	var (
		b          entity.BasicIndustry
		definition sql.NullString
	)
	if err := s.Scan(&b.BasicIndCode, &b.BasicIndustryName, &definition, &b.IndCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan basic industry: %w", err)
	}
	b.Definition = stringPtr(definition)
	return &b, nil
}

// nullable convierte un filtro opcional en argumento SQL (nil -> NULL).
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// limitArg traduce "sin límite" a -1, que SQLite interpreta como sin tope.
func limitArg(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
