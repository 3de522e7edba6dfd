package entity

// MacroEconomicSector representa el nivel raíz de la clasificación industrial.
type MacroEconomicSector struct {
	MesCode             string
	MacroEconomicSector string
}

// Sector representa un sector, hijo de un sector macroeconómico.
type Sector struct {
	SectCode   string
	SectorName string
	MesCode    string
}

// Industry representa una industria, hija de un sector.
type Industry struct {
	IndCode      string
	IndustryName string
	SectCode     string
}

// BasicIndustry representa una industria básica (hoja del árbol), hija de una industria.
type BasicIndustry struct {
	BasicIndCode      string
	BasicIndustryName string
	Definition        *string // nil si no tiene definición
	IndCode           string
}
