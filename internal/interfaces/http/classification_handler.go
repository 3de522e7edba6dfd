package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-classification-api/internal/application/dto"
	"github.com/jhoicas/stock-classification-api/internal/application/usecase"
)

// ClassificationHandler maneja las peticiones HTTP de la jerarquía de clasificación (solo lectura).
type ClassificationHandler struct {
	uc *usecase.ClassificationUseCase
}

// NewClassificationHandler construye el handler.
func NewClassificationHandler(uc *usecase.ClassificationUseCase) *ClassificationHandler {
	return &ClassificationHandler{uc: uc}
}

// DropdownData godoc
// @Summary      Datos para los cuatro selectores en cascada
// @Description  Devuelve las cuatro listas completas en una sola respuesta.
// @Tags         classification
// @Produce      json
// @Success      200  {object}  dto.DropdownDataResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/classification/dropdown-data [get]
func (h *ClassificationHandler) DropdownData(c *fiber.Ctx) error {
	out, err := h.uc.DropdownData(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMacroEconomicSectors godoc
// @Summary      Listar sectores macroeconómicos
// @Tags         classification
// @Produce      json
// @Success      200  {object}  dto.MacroEconomicSectorListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/classification/macro-economic-sectors [get]
func (h *ClassificationHandler) ListMacroEconomicSectors(c *fiber.Ctx) error {
	out, err := h.uc.ListMacroEconomicSectors(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetMacroEconomicSector godoc
// @Summary      Obtener sector macroeconómico por código
// @Tags         classification
// @Produce      json
// @Param        code  path  string  true  "mes_code"
// @Success      200  {object}  dto.MacroEconomicSectorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/classification/macro-economic-sectors/{code} [get]
func (h *ClassificationHandler) GetMacroEconomicSector(c *fiber.Ctx) error {
	out, err := h.uc.GetMacroEconomicSector(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListSectors godoc
// @Summary      Listar sectores
// @Tags         classification
// @Produce      json
// @Param        mes_code  query  string  false  "Filtrar por sector macroeconómico"
// @Success      200  {object}  dto.SectorListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/classification/sectors [get]
func (h *ClassificationHandler) ListSectors(c *fiber.Ctx) error {
	out, err := h.uc.ListSectors(c.UserContext(), optionalQuery(c, "mes_code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetSector godoc
// @Summary      Obtener sector por código
// @Tags         classification
// @Produce      json
// @Param        code  path  string  true  "sect_code"
// @Success      200  {object}  dto.SectorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/classification/sectors/{code} [get]
func (h *ClassificationHandler) GetSector(c *fiber.Ctx) error {
	out, err := h.uc.GetSector(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListIndustries godoc
// @Summary      Listar industrias
// @Tags         classification
// @Produce      json
// @Param        sect_code  query  string  false  "Filtrar por sector"
// @Success      200  {object}  dto.IndustryListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/classification/industries [get]
func (h *ClassificationHandler) ListIndustries(c *fiber.Ctx) error {
	out, err := h.uc.ListIndustries(c.UserContext(), optionalQuery(c, "sect_code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetIndustry godoc
// @Summary      Obtener industria por código
// @Tags         classification
// @Produce      json
// @Param        code  path  string  true  "ind_code"
// @Success      200  {object}  dto.IndustryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/classification/industries/{code} [get]
func (h *ClassificationHandler) GetIndustry(c *fiber.Ctx) error {
	out, err := h.uc.GetIndustry(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListBasicIndustries godoc
// @Summary      Listar industrias básicas (paginado)
// @Tags         classification
// @Produce      json
// @Param        ind_code  query  string  false  "Filtrar por industria"
// @Param        skip      query  int     false  "Filas a omitir"  default(0)   minimum(0)
// @Param        limit     query  int     false  "Tamaño de página" default(50) minimum(1) maximum(200)
// @Success      200  {object}  dto.BasicIndustryPageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/classification/basic-industries [get]
func (h *ClassificationHandler) ListBasicIndustries(c *fiber.Ctx) error {
	skip, ok := intQuery(c, "skip", 0)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "skip debe ser un entero"})
	}
	limit, ok := intQuery(c, "limit", dto.DefaultLimit)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "limit debe ser un entero"})
	}
	out, err := h.uc.ListBasicIndustries(c.UserContext(), optionalQuery(c, "ind_code"), dto.PageRequest{Skip: skip, Limit: limit})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetBasicIndustry godoc
// @Summary      Obtener industria básica por código
// @Tags         classification
// @Produce      json
// @Param        code  path  string  true  "basic_ind_code"
// @Success      200  {object}  dto.BasicIndustryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/classification/basic-industries/{code} [get]
func (h *ClassificationHandler) GetBasicIndustry(c *fiber.Ctx) error {
	out, err := h.uc.GetBasicIndustry(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListStocks godoc
// @Summary      Empresas clasificadas en una industria básica
// @Description  Lee la tabla externa company_classification, ordenada por nombre de empresa.
// @Tags         classification
// @Produce      json
// @Param        code  path  string  true  "basic_ind_code"
// @Success      200  {object}  dto.CompanyClassificationListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/classification/basic-industries/{code}/stocks [get]
func (h *ClassificationHandler) ListStocks(c *fiber.Ctx) error {
	out, err := h.uc.ListStocksByBasicIndustry(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// optionalQuery distingue parámetro ausente (nil) de parámetro vacío.
func optionalQuery(c *fiber.Ctx, key string) *string {
	if !c.Context().QueryArgs().Has(key) {
		return nil
	}
	v := c.Query(key)
	return &v
}

// intQuery lee un entero opcional; ok=false si viene (aunque vacío) y no es entero.
func intQuery(c *fiber.Ctx, key string, def int) (int, bool) {
	if !c.Context().QueryArgs().Has(key) {
		return def, true
	}
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0, false
	}
	return n, true
}
