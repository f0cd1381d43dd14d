package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/naisata/servicios-api/pkg/config"
)

// Driver backend donde se guardan los objetos.
type Driver interface {
	// Upload guarda el objeto en key y devuelve su URL pública.
	Upload(ctx context.Context, r io.Reader, key, contentType string) (string, error)
}

// LocalDriver guarda en disco; los archivos se sirven en /uploads.
type LocalDriver struct {
	basePath string
}

// NewLocalDriver crea el driver local. basePath vacío usa ./uploads.
func NewLocalDriver(basePath string) *LocalDriver {
	if basePath == "" {
		basePath = "./uploads"
	}
	return &LocalDriver{basePath: basePath}
}

// BasePath directorio raíz de los archivos.
func (d *LocalDriver) BasePath() string { return d.basePath }

func (d *LocalDriver) Upload(_ context.Context, r io.Reader, key, _ string) (string, error) {
	fullPath := filepath.Join(d.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("crear directorio: %w", err)
	}
	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("crear archivo: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return "", fmt.Errorf("escribir archivo: %w", err)
	}
	return "/uploads/" + key, nil
}

// S3Driver guarda en un bucket S3 o compatible (R2, MinIO) cuando hay endpoint propio.
type S3Driver struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Driver crea el cliente S3 con credenciales estáticas.
func NewS3Driver(ctx context.Context, cfg config.MediaConfig) (*S3Driver, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("MEDIA_S3_BUCKET es requerido")
	}
	if cfg.S3AccessKeyID == "" || cfg.S3SecretAccessKey == "" {
		return nil, fmt.Errorf("credenciales S3 requeridas")
	}
	region := cfg.S3Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("cargar configuración AWS: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, region)
	}
	return &S3Driver{
		client:    client,
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

func (d *S3Driver) Upload(ctx context.Context, r io.Reader, key, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("leer objeto: %w", err)
	}
	key = strings.TrimPrefix(key, "/")
	_, err = d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("subir a S3: %w", err)
	}
	return d.publicURL + "/" + key, nil
}
