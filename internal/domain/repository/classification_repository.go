package repository

import (
	"context"

	"github.com/jhoicas/stock-classification-api/internal/domain/entity"
)

// BasicIndustryFilter filtro y ventana de paginación para listar industrias básicas.
type BasicIndustryFilter struct {
	IndCode *string // nil = sin filtro
	Skip    int
	Limit   int // <= 0 = sin límite
}

// ClassificationRepository define el puerto de lectura de la jerarquía de clasificación (DIP).
// Los Get devuelven (nil, nil) cuando el código no existe.
type ClassificationRepository interface {
	ListMacroEconomicSectors(ctx context.Context) ([]*entity.MacroEconomicSector, error)
	GetMacroEconomicSector(ctx context.Context, mesCode string) (*entity.MacroEconomicSector, error)

	ListSectors(ctx context.Context, mesCode *string) ([]*entity.Sector, error)
	GetSector(ctx context.Context, sectCode string) (*entity.Sector, error)

	ListIndustries(ctx context.Context, sectCode *string) ([]*entity.Industry, error)
	GetIndustry(ctx context.Context, indCode string) (*entity.Industry, error)

	// ListBasicIndustries devuelve la página pedida y el total del conjunto filtrado.
	ListBasicIndustries(ctx context.Context, filter BasicIndustryFilter) ([]*entity.BasicIndustry, int, error)
	GetBasicIndustry(ctx context.Context, basicIndCode string) (*entity.BasicIndustry, error)

	// FetchStocksByBasicIndCode consulta la tabla externa company_classification.
	// Cualquier fallo se devuelve como *domain.CompanyClassificationQueryError.
	FetchStocksByBasicIndCode(ctx context.Context, basicIndCode string) ([]*entity.CompanyClassification, error)
}
