package dto

import (
	"fmt"

	"github.com/jhoicas/stock-classification-api/internal/domain"
)

var (
	errSkip  = fmt.Errorf("skip debe ser >= 0: %w", domain.ErrInvalidInput)
	errLimit = fmt.Errorf("limit debe estar entre 1 y %d: %w", MaxLimit, domain.ErrInvalidInput)
)
