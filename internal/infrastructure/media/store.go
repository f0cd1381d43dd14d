package media

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/disintegration/imaging"

	"github.com/naisata/servicios-api/internal/application/ports"
	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/pkg/config"
	"github.com/naisata/servicios-api/pkg/logger"
)

var (
	_ ports.MediaStore = (*InlineStore)(nil)
	_ ports.MediaStore = (*ObjectStore)(nil)
)

// New crea el almacén según MEDIA_DRIVER: inline, local o s3.
func New(ctx context.Context, cfg config.MediaConfig, log *logger.Logger) (ports.MediaStore, error) {
	switch cfg.Driver {
	case "inline", "":
		return NewInlineStore(), nil
	case "local":
		return NewObjectStore(NewLocalDriver(cfg.UploadsPath), cfg.MaxWidth, log), nil
	case "s3":
		driver, err := NewS3Driver(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewObjectStore(driver, cfg.MaxWidth, log), nil
	default:
		return nil, fmt.Errorf("MEDIA_DRIVER no soportado: %s", cfg.Driver)
	}
}

// InlineStore valida el data URI y lo guarda tal cual en el documento.
type InlineStore struct{}

// NewInlineStore crea el almacén inline.
func NewInlineStore() *InlineStore { return &InlineStore{} }

// Store devuelve el mismo valor si es una imagen válida o una referencia existente.
func (s *InlineStore) Store(_ context.Context, _ string, value string) (string, error) {
	if value == "" || IsReference(value) {
		return value, nil
	}
	if _, err := ParseDataURI(value); err != nil {
		return "", err
	}
	return value, nil
}

// ObjectStore sube cada imagen a un Driver y guarda su URL pública.
type ObjectStore struct {
	driver   Driver
	maxWidth int
	log      *logger.Logger
	now      func() time.Time
}

// NewObjectStore crea el almacén sobre el driver dado. maxWidth <= 0 desactiva el escalado.
func NewObjectStore(driver Driver, maxWidth int, log *logger.Logger) *ObjectStore {
	if log == nil {
		log = logger.Nop()
	}
	return &ObjectStore{driver: driver, maxWidth: maxWidth, log: log, now: time.Now}
}

// Store decodifica, reduce fotos y logos demasiado anchos y sube el objeto.
// Las firmas se guardan sin tocar para conservar la transparencia del PNG.
func (s *ObjectStore) Store(ctx context.Context, kind, value string) (string, error) {
	if value == "" || IsReference(value) {
		return value, nil
	}
	img, err := ParseDataURI(value)
	if err != nil {
		return "", err
	}
	if kind != ports.MediaSignature {
		img = s.downscale(img)
	}

	key := path.Join(kind, s.now().UTC().Format("2006/01"), entity.NewID()+img.Extension())
	url, err := s.driver.Upload(ctx, bytes.NewReader(img.Data), key, img.MIME)
	if err != nil {
		return "", fmt.Errorf("subir %s: %w", kind, err)
	}
	return url, nil
}

// downscale reescala a maxWidth y recodifica como JPEG. Si la imagen no se puede
// decodificar (svg, webp) se sube el original.
func (s *ObjectStore) downscale(img *DataURI) *DataURI {
	if s.maxWidth <= 0 {
		return img
	}
	src, err := imaging.Decode(bytes.NewReader(img.Data), imaging.AutoOrientation(true))
	if err != nil {
		s.log.Debug().Err(err).Str("mime", img.MIME).Msg("imagen no decodificable, se guarda sin escalar")
		return img
	}
	if src.Bounds().Dx() <= s.maxWidth {
		return img
	}
	resized := imaging.Resize(src, s.maxWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		s.log.Warn().Err(err).Msg("no se pudo recodificar la imagen")
		return img
	}
	return &DataURI{MIME: "image/jpeg", Data: buf.Bytes()}
}
