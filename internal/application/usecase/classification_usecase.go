package usecase

import (
	"context"

	"github.com/jhoicas/stock-classification-api/internal/application/dto"
	"github.com/jhoicas/stock-classification-api/internal/domain"
	"github.com/jhoicas/stock-classification-api/internal/domain/entity"
	"github.com/jhoicas/stock-classification-api/internal/domain/repository"
)

// Mensajes de "no encontrado" por entidad.
const (
	msgMacroEconomicSectorNotFound = "sector macroeconómico no encontrado"
	msgSectorNotFound              = "sector no encontrado"
	msgIndustryNotFound            = "industria no encontrada"
	msgBasicIndustryNotFound       = "industria básica no encontrada"
)

// ClassificationUseCase casos de uso de lectura de la jerarquía de clasificación.
// Cada operación corre dentro de una única sesión del TxRunner.
type ClassificationUseCase struct {
	tx TxRunner
}

// NewClassificationUseCase construye el caso de uso.
func NewClassificationUseCase(tx TxRunner) *ClassificationUseCase {
	return &ClassificationUseCase{tx: tx}
}

// DropdownData carga las cuatro listas completas, sin filtro y con el orden por defecto.
func (uc *ClassificationUseCase) DropdownData(ctx context.Context) (*dto.DropdownDataResponse, error) {
	var out dto.DropdownDataResponse
	err := uc.tx.Run(ctx, func(repo repository.ClassificationRepository) error {
		mes, err := repo.ListMacroEconomicSectors(ctx)
		if err != nil {
			return err
		}
		sectors, err := repo.ListSectors(ctx, nil)
		if err != nil {
			return err
		}
		industries, err := repo.ListIndustries(ctx, nil)
		if err != nil {
			return err
		}
		basics, _, err := repo.ListBasicIndustries(ctx, repository.BasicIndustryFilter{})
		if err != nil {
			return err
		}
		out = dto.DropdownDataResponse{
			MacroEconomicSectors: mapAll(mes, toMacroEconomicSectorResponse),
			Sectors:              mapAll(sectors, toSectorResponse),
			Industries:           mapAll(industries, toIndustryResponse),
			BasicIndustries:      mapAll(basics, toBasicIndustryResponse),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMacroEconomicSectors lista todos los sectores macroeconómicos.
func (uc *ClassificationUseCase) ListMacroEconomicSectors(ctx context.Context) (*dto.MacroEconomicSectorListResponse, error) {
	var out dto.MacroEconomicSectorListResponse
	err := uc.tx.Run(ctx, func(repo repository.ClassificationRepository) error {
		list, err := repo.ListMacroEconomicSectors(ctx)
		if err != nil {
			return err
		}
		out = dto.NewListEnvelope(mapAll(list, toMacroEconomicSectorResponse))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMacroEconomicSector obtiene un sector macroeconómico; domain.ErrNotFound si no existe.
func (uc *ClassificationUseCase) GetMacroEconomicSector(ctx context.Context, mesCode string) (*dto.MacroEconomicSectorResponse, error) {
	var out *dto.MacroEconomicSectorResponse
	err := uc.tx.Run(ctx, func(repo repository.ClassificationRepository) error {
		m, err := repo.GetMacroEconomicSector(ctx, mesCode)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.NotFound(msgMacroEconomicSectorNotFound)
		}
		r := toMacroEconomicSectorResponse(m)
		out = &r
		return nil
	})
	return out, err
}

// ListSectors lista sectores, opcionalmente filtrados por mes_code.
func (uc *ClassificationUseCase) ListSectors(ctx context.Context, mesCode *string) (*dto.SectorListResponse, error) {
	var out dto.SectorListResponse
	err := uc.tx.Run(ctx, func(repo repository.ClassificationRepository) error {
		list, err := repo.ListSectors(ctx, mesCode)
		if err != nil {
			return err
		}
		out = dto.NewListEnvelope(mapAll(list, toSectorResponse))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSector obtiene un sector; domain.ErrNotFound si no existe.
func (uc *ClassificationUseCase) GetSector(ctx context.Context, sectCode string) (*dto.SectorResponse, error) {
	var out *dto.SectorResponse
	err := uc.tx.Run(ctx, func(repo repository.ClassificationRepository) error {
		s, err := repo.GetSector(ctx, sectCode)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NotFound(msgSectorNotFound)
		}
		r := toSectorResponse(s)
		out = &r
		return nil
	})
	return out, err
}

// ListIndustries lista industrias, opcionalmente filtradas por sect_code.
func (uc *ClassificationUseCase) ListIndustries(ctx context.Context, sectCode *string) (*dto.IndustryListResponse, error) {
	var out dto.IndustryListResponse
	err := uc.tx.Run(ctx, func(repo repository.ClassificationRepository) error {
		list, err := repo.ListIndustries(ctx, sectCode)
		if err != nil {
			return err
		}
		out = dto.NewListEnvelope(mapAll(list, toIndustryResponse))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetIndustry obtiene una industria; domain.ErrNotFound si no existe.
func (uc *ClassificationUseCase) GetIndustry(ctx context.Context, indCode string) (*dto.IndustryResponse, error) {
	var out *dto.IndustryResponse
	err := uc.tx.Run(ctx, func(repo repository.ClassificationRepository) error {
		i, err := repo.GetIndustry(ctx, indCode)
		if err != nil {
			return err
		}
		if i == nil {
			return domain.NotFound(msgIndustryNotFound)
		}
		r := toIndustryResponse(i)
		out = &r
		return nil
	})
	return out, err
}

// ListBasicIndustries lista industrias básicas paginadas; total refleja el conjunto filtrado completo.
func (uc *ClassificationUseCase) ListBasicIndustries(ctx context.Context, indCode *string, page dto.PageRequest) (*dto.BasicIndustryPageResponse, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	var out dto.BasicIndustryPageResponse
	err := uc.tx.Run(ctx, func(repo repository.ClassificationRepository) error {
		list, total, err := repo.ListBasicIndustries(ctx, repository.BasicIndustryFilter{
			IndCode: indCode,
			Skip:    page.Skip,
			Limit:   page.Limit,
		})
		if err != nil {
			return err
		}
		out = dto.NewPageEnvelope(mapAll(list, toBasicIndustryResponse), total)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBasicIndustry obtiene una industria básica; domain.ErrNotFound si no existe.
func (uc *ClassificationUseCase) GetBasicIndustry(ctx context.Context, basicIndCode string) (*dto.BasicIndustryResponse, error) {
	var out *dto.BasicIndustryResponse
	err := uc.tx.Run(ctx, func(repo repository.ClassificationRepository) error {
		b, err := repo.GetBasicIndustry(ctx, basicIndCode)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.NotFound(msgBasicIndustryNotFound)
		}
		r := toBasicIndustryResponse(b)
		out = &r
		return nil
	})
	return out, err
}

// ListStocksByBasicIndustry lista las empresas de una industria básica existente, por nombre.
// Devuelve domain.ErrNotFound si la industria básica no existe y
// *domain.CompanyClassificationQueryError si la consulta a la tabla externa falla.
func (uc *ClassificationUseCase) ListStocksByBasicIndustry(ctx context.Context, basicIndCode string) (*dto.CompanyClassificationListResponse, error) {
	var out dto.CompanyClassificationListResponse
	err := uc.tx.Run(ctx, func(repo repository.ClassificationRepository) error {
		b, err := repo.GetBasicIndustry(ctx, basicIndCode)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.NotFound(msgBasicIndustryNotFound)
		}
		rows, err := repo.FetchStocksByBasicIndCode(ctx, basicIndCode)
		if err != nil {
			return err
		}
		out = dto.NewListEnvelope(mapAll(rows, toCompanyClassificationResponse))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func mapAll[E any, R any](items []*E, fn func(*E) R) []R {
	out := make([]R, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}

func toMacroEconomicSectorResponse(m *entity.MacroEconomicSector) dto.MacroEconomicSectorResponse {
	return dto.MacroEconomicSectorResponse{
		MesCode:             m.MesCode,
		MacroEconomicSector: m.MacroEconomicSector,
	}
}

func toSectorResponse(s *entity.Sector) dto.SectorResponse {
	return dto.SectorResponse{
		SectCode:   s.SectCode,
		SectorName: s.SectorName,
		MesCode:    s.MesCode,
	}
}

func toIndustryResponse(i *entity.Industry) dto.IndustryResponse {
	return dto.IndustryResponse{
		IndCode:      i.IndCode,
		IndustryName: i.IndustryName,
		SectCode:     i.SectCode,
	}
}

func toBasicIndustryResponse(b *entity.BasicIndustry) dto.BasicIndustryResponse {
	return dto.BasicIndustryResponse{
		BasicIndCode:      b.BasicIndCode,
		BasicIndustryName: b.BasicIndustryName,
		Definition:        b.Definition,
		IndCode:           b.IndCode,
	}
}

func toCompanyClassificationResponse(c *entity.CompanyClassification) dto.CompanyClassificationResponse {
	return dto.CompanyClassificationResponse{
		CompanyID:         c.CompanyID,
		CompanyName:       c.CompanyName,
		Comments:          c.Comments,
		MarketCapCategory: c.MarketCapCategory,
	}
}
