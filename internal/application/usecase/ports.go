package usecase

import (
	"context"

	"github.com/jhoicas/stock-classification-api/internal/domain/repository"
)

// TxRunner ejecuta una unidad de trabajo dentro de una sesión de almacenamiento,
// pasando el repositorio atado a esa sesión. Commit si fn no falla; Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.ClassificationRepository) error) error
}
