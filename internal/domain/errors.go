package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrInvalidItem             = errors.New("artículo no válido para la categoría")
	ErrDuplicate               = errors.New("recurso duplicado")
	ErrUnauthorized            = errors.New("no autorizado")
	ErrForbidden               = errors.New("acceso denegado")
	ErrInvalidStatusTransition = errors.New("transición de estado no permitida")
	ErrInsufficientStock       = errors.New("stock insuficiente")

	// ErrStaleState: el registro cambió de estado entre la lectura y la actualización condicional.
	// errors.Is(ErrStaleState, ErrInvalidStatusTransition) es true.
	ErrStaleState = fmt.Errorf("%w: el estado cambió concurrentemente", ErrInvalidStatusTransition)
)

// ValidationError describe una entrada mal formada. errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye el error de validación de un campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is permite comparar contra ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// InsufficientStockError informa la cantidad realmente disponible para que el aprobador la vea.
// errors.Is(err, ErrInsufficientStock) es true.
type InsufficientStockError struct {
	ItemName   string
	Department string
	Requested  int
	Available  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente de %q en %s: solicitado %d, disponible %d",
		e.ItemName, e.Department, e.Requested, e.Available)
}

// Is permite comparar contra ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }
