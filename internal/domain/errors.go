package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrRender            = errors.New("error generando documento")
)

// NotFound envuelve ErrNotFound con el recurso concreto (ej. "cliente 123").
func NotFound(resource, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %s", ErrNotFound, resource)
	}
	return fmt.Errorf("%w: %s %s", ErrNotFound, resource, id)
}

// ValidationError error de validación orientado al cliente.
// Details lleva los valores útiles para corregir la petición (calculado vs. enviado, stock actual, etc.).
type ValidationError struct {
	Field   string
	Message string
	Details map[string]any
}

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string, details map[string]any) *ValidationError {
	return &ValidationError{Field: field, Message: message, Details: details}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// RenderError fallo del motor de documentos. Op describe la etapa (layout, imagen, salida).
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrRender).
func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}
