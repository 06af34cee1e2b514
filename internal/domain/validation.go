package domain

import (
	"fmt"
	"strings"
)

// FieldError es un error de validación atado a un campo concreto del request.
// Field usa notación con puntos para campos anidados, ej. "modules.2.active".
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors acumula errores de validación de una misma petición.
// Se recolectan todos antes de responder: la validación no corta en el primer fallo.
type ValidationErrors struct {
	fields []FieldError
}

// Add registra un error para un campo.
func (v *ValidationErrors) Add(field, message string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

// Addf registra un error con el nombre de campo formateado.
func (v *ValidationErrors) Addf(message string, fieldFormat string, args ...any) {
	v.Add(fmt.Sprintf(fieldFormat, args...), message)
}

// HasErrors informa si se registró al menos un error.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.fields) > 0
}

// Fields devuelve los errores en orden de registro.
func (v *ValidationErrors) Fields() []FieldError {
	return v.fields
}

// AsMap agrupa los mensajes por campo, el formato que espera la respuesta 422.
func (v *ValidationErrors) AsMap() map[string][]string {
	m := make(map[string][]string, len(v.fields))
	for _, fe := range v.fields {
		m[fe.Field] = append(m[fe.Field], fe.Message)
	}
	return m
}

// Error implementa error.
func (v *ValidationErrors) Error() string {
	if len(v.fields) == 0 {
		return "validación fallida"
	}
	parts := make([]string, 0, len(v.fields))
	for _, fe := range v.fields {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validación fallida: " + strings.Join(parts, "; ")
}
