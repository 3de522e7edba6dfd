package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                   = errors.New("recurso no encontrado")
	ErrInvalidInput               = errors.New("entrada inválida")
	ErrCompanyClassificationQuery = errors.New("falló la consulta de company_classification")
)

// CompanyClassificationQueryError envuelve el error de almacenamiento al consultar
// las empresas de una industria básica. Permite distinguir "sin filas" de "consulta rota".
type CompanyClassificationQueryError struct {
	BasicIndCode string
	Err          error
}

// NewCompanyClassificationQueryError construye el error tipado.
func NewCompanyClassificationQueryError(basicIndCode string, err error) *CompanyClassificationQueryError {
	return &CompanyClassificationQueryError{BasicIndCode: basicIndCode, Err: err}
}

func (e *CompanyClassificationQueryError) Error() string {
	return fmt.Sprintf("consultar empresas de basic_ind_code=%s: %v", e.BasicIndCode, e.Err)
}

// Unwrap expone la causa de almacenamiento.
func (e *CompanyClassificationQueryError) Unwrap() error { return e.Err }

// Is hace que errors.Is(err, ErrCompanyClassificationQuery) sea verdadero.
func (e *CompanyClassificationQueryError) Is(target error) bool {
	return target == ErrCompanyClassificationQuery
}

// NotFoundError indica que el código pedido no existe; Message nombra la entidad.
type NotFoundError struct {
	Message string
}

// NotFound construye un NotFoundError, p. ej. NotFound("sector no encontrado").
func NotFound(message string) error {
	return &NotFoundError{Message: message}
}

func (e *NotFoundError) Error() string { return e.Message }

// Is hace que errors.Is(err, ErrNotFound) sea verdadero.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
