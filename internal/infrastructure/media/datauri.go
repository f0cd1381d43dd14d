// Package media implementa ports.MediaStore: logos, fotos y firmas que llegan como
// data URI dentro del JSON.
package media

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/naisata/servicios-api/internal/domain"
)

// DataURI imagen decodificada de un valor "data:<mime>;base64,<datos>".
type DataURI struct {
	MIME string
	Data []byte
}

// IsDataURI informa si v parece un data URI.
func IsDataURI(v string) bool {
	return strings.HasPrefix(v, "data:")
}

// IsReference informa si v ya es una URL o ruta pública de un objeto guardado.
func IsReference(v string) bool {
	return strings.HasPrefix(v, "https://") || strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "/uploads/")
}

// ParseDataURI valida y decodifica una imagen en base64. Solo acepta tipos image/*.
func ParseDataURI(v string) (*DataURI, error) {
	if !IsDataURI(v) {
		return nil, fmt.Errorf("%w: la imagen debe enviarse como data URI", domain.ErrInvalidInput)
	}
	header, payload, ok := strings.Cut(v[len("data:"):], ",")
	if !ok {
		return nil, fmt.Errorf("%w: data URI sin datos", domain.ErrInvalidInput)
	}
	mime, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return nil, fmt.Errorf("%w: data URI debe estar en base64", domain.ErrInvalidInput)
	}
	mime = strings.ToLower(strings.TrimSpace(mime))
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("%w: tipo %q no es una imagen", domain.ErrInvalidInput, mime)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Algunos clientes omiten el relleno "=".
		if data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); err != nil {
			return nil, fmt.Errorf("%w: base64 inválido", domain.ErrInvalidInput)
		}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: imagen vacía", domain.ErrInvalidInput)
	}
	return &DataURI{MIME: mime, Data: data}, nil
}

// Extension sufijo de archivo para el tipo MIME.
func (d *DataURI) Extension() string {
	switch d.MIME {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "image/svg+xml":
		return ".svg"
	default:
		return ".bin"
	}
}
