package memory

import (
	"context"
	"time"

	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository = (*CompanyRepo)(nil)
	_ repository.SiteRepository    = (*SiteRepo)(nil)
)

// CompanyRepo empresas en memoria.
type CompanyRepo struct {
	t *table[entity.Company]
}

// NewCompanyRepository construye el repositorio vacío.
func NewCompanyRepository() *CompanyRepo {
	return &CompanyRepo{t: newTable(func(c *entity.Company) *entity.Company {
		v := *c
		return &v
	}, func(c *entity.Company) time.Time { return c.CreatedAt })}
}

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.t.insert(c.ID, c)
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return r.t.get(id), nil
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	r.t.replace(c.ID, c)
	return nil
}

func (r *CompanyRepo) List(_ context.Context) ([]*entity.Company, error) {
	return r.t.list(nil), nil
}

func (r *CompanyRepo) Delete(_ context.Context, id string) (bool, error) {
	return r.t.delete(id), nil
}

// SiteRepo sitios en memoria.
type SiteRepo struct {
	t *table[entity.Site]
}

// NewSiteRepository construye el repositorio vacío.
func NewSiteRepository() *SiteRepo {
	return &SiteRepo{t: newTable(func(s *entity.Site) *entity.Site {
		v := *s
		v.CompanyID = cloneStrPtr(s.CompanyID)
		return &v
	}, func(s *entity.Site) time.Time { return s.CreatedAt })}
}

func (r *SiteRepo) Create(_ context.Context, s *entity.Site) error {
	r.t.insert(s.ID, s)
	return nil
}

func (r *SiteRepo) GetByID(_ context.Context, id string) (*entity.Site, error) {
	return r.t.get(id), nil
}

func (r *SiteRepo) Update(_ context.Context, s *entity.Site) error {
	r.t.replace(s.ID, s)
	return nil
}

func (r *SiteRepo) List(_ context.Context) ([]*entity.Site, error) {
	return r.t.list(nil), nil
}

func (r *SiteRepo) Delete(_ context.Context, id string) (bool, error) {
	return r.t.delete(id), nil
}

// UnlinkCompany pone CompanyID en nil en los sitios que apuntan a companyID.
func (r *SiteRepo) UnlinkCompany(_ context.Context, companyID string) (int64, error) {
	now := time.Now()
	return r.t.mutateWhere(
		func(s *entity.Site) bool { return entity.IDValue(s.CompanyID) == companyID },
		func(s *entity.Site) {
			s.CompanyID = nil
			s.UpdatedAt = now
		},
	), nil
}
