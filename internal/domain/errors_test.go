package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-classification-api/internal/domain"
)

func TestCompanyClassificationQueryError_EsDistinguible(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := fmt.Errorf("caso de uso: %w", domain.NewCompanyClassificationQueryError("A1a1", cause))

	assert.True(t, errors.Is(err, domain.ErrCompanyClassificationQuery))
	assert.True(t, errors.Is(err, cause), "la causa debe seguir accesible con Unwrap")
	assert.False(t, errors.Is(err, domain.ErrNotFound))

	var qerr *domain.CompanyClassificationQueryError
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, "A1a1", qerr.BasicIndCode)
	assert.Contains(t, qerr.Error(), "A1a1")
}

func TestNotFound_ConservaMensaje(t *testing.T) {
	err := fmt.Errorf("get: %w", domain.NotFound("sector no encontrado"))

	assert.True(t, errors.Is(err, domain.ErrNotFound))

	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "sector no encontrado", nf.Message)
}
