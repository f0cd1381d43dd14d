package entity

import (
	"strings"

	"github.com/google/uuid"
)

// NewID genera un identificador nuevo para cualquier colección.
func NewID() string {
	return uuid.New().String()
}

// ValidID informa si s tiene la forma de un identificador del sistema.
// Todas las rutas de lectura lo usan antes de consultar el almacén: un id mal
// formado equivale a "no existe", nunca a un error de infraestructura.
func ValidID(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// OptionalID normaliza una referencia blanda: devuelve nil si el id está vacío o mal formado.
func OptionalID(s string) *string {
	s = strings.TrimSpace(s)
	if !ValidID(s) {
		return nil
	}
	return &s
}

// IDValue desreferencia un id opcional.
func IDValue(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}
