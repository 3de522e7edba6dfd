package dto

// PageRequest paginación para listados (skip/limit).
type PageRequest struct {
	Skip  int `query:"skip"`
	Limit int `query:"limit"`
}

// Límites de paginación del listado de industrias básicas.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Validate exige skip >= 0 y limit en [1, MaxLimit].
func (p PageRequest) Validate() error {
	if p.Skip < 0 {
		return errSkip
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return errLimit
	}
	return nil
}

// ListEnvelope sobre de listados: data + count.
type ListEnvelope[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

// NewListEnvelope construye el sobre; data nunca se serializa como null.
func NewListEnvelope[T any](items []T) ListEnvelope[T] {
	if items == nil {
		items = []T{}
	}
	return ListEnvelope[T]{Data: items, Count: len(items)}
}

// PageEnvelope sobre paginado: data + count de la página + total del filtro.
type PageEnvelope[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
	Total int `json:"total"`
}

// NewPageEnvelope construye el sobre paginado.
func NewPageEnvelope[T any](items []T, total int) PageEnvelope[T] {
	if items == nil {
		items = []T{}
	}
	return PageEnvelope[T]{Data: items, Count: len(items), Total: total}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse cuerpo de /health.
type HealthResponse struct {
	Status string `json:"status"`
	App    string `json:"app"`
}
