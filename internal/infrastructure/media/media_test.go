package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naisata/servicios-api/internal/application/ports"
	"github.com/naisata/servicios-api/internal/domain"
	"github.com/naisata/servicios-api/pkg/config"
	"github.com/naisata/servicios-api/pkg/logger"
)

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.NRGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestParseDataURI(t *testing.T) {
	d, err := ParseDataURI("data:image/png;base64,QUJD")
	require.NoError(t, err)
	assert.Equal(t, "image/png", d.MIME)
	assert.Equal(t, []byte("ABC"), d.Data)
	assert.Equal(t, ".png", d.Extension())

	d, err = ParseDataURI("data:image/jpeg;base64,QUI")
	require.NoError(t, err, "acepta base64 sin relleno")
	assert.Equal(t, []byte("AB"), d.Data)

	for _, bad := range []string{
		"hola",
		"data:image/png,QUJD",
		"data:text/plain;base64,QUJD",
		"data:image/png;base64,%%%",
		"data:image/png;base64",
	} {
		_, err := ParseDataURI(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, bad)
	}
}

func TestInlineStore(t *testing.T) {
	s := NewInlineStore()
	ctx := context.Background()

	v, err := s.Store(ctx, ports.MediaPhoto, "data:image/png;base64,QUJD")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,QUJD", v)

	v, err = s.Store(ctx, ports.MediaLogo, "")
	require.NoError(t, err)
	assert.Empty(t, v)

	v, err = s.Store(ctx, ports.MediaLogo, "https://cdn.naisata.com/logo.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.naisata.com/logo.png", v)

	_, err = s.Store(ctx, ports.MediaSignature, "no-es-imagen")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestObjectStore_LocalReduceFotosAnchas(t *testing.T) {
	dir := t.TempDir()
	s := NewObjectStore(NewLocalDriver(dir), 100, logger.Nop())

	url, err := s.Store(context.Background(), ports.MediaPhoto, pngDataURI(t, 400, 20))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/fotos/"), url)
	assert.True(t, strings.HasSuffix(url, ".jpg"), "las fotos reducidas se guardan como JPEG")

	f, err := os.Open(filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(url, "/uploads/"))))
	require.NoError(t, err)
	defer f.Close()
	img, err := imaging.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 5, img.Bounds().Dy())
}

func TestObjectStore_FirmaSinCambios(t *testing.T) {
	dir := t.TempDir()
	s := NewObjectStore(NewLocalDriver(dir), 100, nil)

	url, err := s.Store(context.Background(), ports.MediaSignature, pngDataURI(t, 400, 20))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/firmas/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	same, err := s.Store(context.Background(), ports.MediaSignature, url)
	require.NoError(t, err)
	assert.Equal(t, url, same, "una referencia existente no se vuelve a subir")
}

func TestNew_DriverDesconocido(t *testing.T) {
	_, err := New(context.Background(), config.MediaConfig{Driver: "ftp"}, nil)
	assert.Error(t, err)

	store, err := New(context.Background(), config.MediaConfig{Driver: "local", UploadsPath: t.TempDir()}, nil)
	require.NoError(t, err)
	assert.IsType(t, &ObjectStore{}, store)

	_, err = New(context.Background(), config.MediaConfig{Driver: "s3"}, nil)
	assert.Error(t, err, "s3 sin bucket debe fallar")
}
