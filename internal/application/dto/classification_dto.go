package dto

// MacroEconomicSectorResponse salida de un sector macroeconómico.
type MacroEconomicSectorResponse struct {
	MesCode             string `json:"mes_code"`
	MacroEconomicSector string `json:"macro_economic_sector"`
}

// SectorResponse salida de un sector.
type SectorResponse struct {
	SectCode   string `json:"sect_code"`
	SectorName string `json:"sector_name"`
	MesCode    string `json:"mes_code"`
}

// IndustryResponse salida de una industria.
type IndustryResponse struct {
	IndCode      string `json:"ind_code"`
	IndustryName string `json:"industry_name"`
	SectCode     string `json:"sect_code"`
}

// BasicIndustryResponse salida de una industria básica. Definition es null si no existe.
type BasicIndustryResponse struct {
	BasicIndCode      string  `json:"basic_ind_code"`
	BasicIndustryName string  `json:"basic_industry_name"`
	Definition        *string `json:"definition"`
	IndCode           string  `json:"ind_code"`
}

// CompanyClassificationResponse salida de una empresa clasificada en una industria básica.
type CompanyClassificationResponse struct {
	CompanyID         *int64  `json:"company_id"`
	CompanyName       string  `json:"company_name"`
	Comments          *string `json:"comments"`
	MarketCapCategory *string `json:"market_cap_category"`
}

// DropdownDataResponse las cuatro listas completas para los selectores en cascada, en una sola llamada.
type DropdownDataResponse struct {
	MacroEconomicSectors []MacroEconomicSectorResponse `json:"macro_economic_sectors"`
	Sectors              []SectorResponse              `json:"sectors"`
	Industries           []IndustryResponse            `json:"industries"`
	BasicIndustries      []BasicIndustryResponse       `json:"basic_industries"`
}

// Listados concretos (nombrados para la documentación Swagger).
type (
	MacroEconomicSectorListResponse   = ListEnvelope[MacroEconomicSectorResponse]
	SectorListResponse                = ListEnvelope[SectorResponse]
	IndustryListResponse              = ListEnvelope[IndustryResponse]
	BasicIndustryPageResponse         = PageEnvelope[BasicIndustryResponse]
	CompanyClassificationListResponse = ListEnvelope[CompanyClassificationResponse]
)
