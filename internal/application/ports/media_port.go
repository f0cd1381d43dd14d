package ports

import "context"

// Tipos de imagen que maneja el almacén de medios.
const (
	MediaLogo      = "logos"
	MediaPhoto     = "fotos"
	MediaSignature = "firmas"
)

// MediaStore puerto para imágenes que llegan como data URI dentro del JSON.
// Store devuelve el valor a persistir en el campo: el mismo data URI (modo inline)
// o la URL pública del objeto guardado. Un valor vacío se devuelve vacío.
type MediaStore interface {
	Store(ctx context.Context, kind, value string) (string, error)
}
