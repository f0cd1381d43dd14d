package repository

import (
	"context"

	"github.com/naisata/servicios-api/internal/domain/entity"
)

// SiteRepository define el puerto de persistencia para Site.
type SiteRepository interface {
	Create(ctx context.Context, site *entity.Site) error
	GetByID(ctx context.Context, id string) (*entity.Site, error)
	Update(ctx context.Context, site *entity.Site) error
	List(ctx context.Context) ([]*entity.Site, error)
	Delete(ctx context.Context, id string) (bool, error)
	// UnlinkCompany pone en nil la referencia a la empresa en todos los sitios que la usan.
	UnlinkCompany(ctx context.Context, companyID string) (int64, error)
}
