package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-classification-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClassificationUC *usecase.ClassificationUseCase
}

// Router registra las rutas de la API. Todas son públicas y de solo lectura.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	classification := api.Group("/classification")
	h := NewClassificationHandler(deps.ClassificationUC)
	classification.Get("/dropdown-data", h.DropdownData)

	classification.Get("/macro-economic-sectors", h.ListMacroEconomicSectors)
	classification.Get("/macro-economic-sectors/:code", h.GetMacroEconomicSector)

	classification.Get("/sectors", h.ListSectors)
	classification.Get("/sectors/:code", h.GetSector)

	classification.Get("/industries", h.ListIndustries)
	classification.Get("/industries/:code", h.GetIndustry)

	classification.Get("/basic-industries", h.ListBasicIndustries)
	classification.Get("/basic-industries/:code", h.GetBasicIndustry)
	classification.Get("/basic-industries/:code/stocks", h.ListStocks)
}
