package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, logo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Logo, c.CreatedAt, c.UpdatedAt); err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `SELECT id, name, logo, created_at, updated_at FROM companies WHERE id = $1`
	var c entity.Company
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Logo, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Update actualiza nombre y logo.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `UPDATE companies SET name = $2, logo = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Logo, c.UpdatedAt); err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// List lista empresas, más recientes primero.
func (r *CompanyRepo) List(ctx context.Context) ([]*entity.Company, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, logo, created_at, updated_at FROM companies ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Logo, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina la empresa; false si no existía.
func (r *CompanyRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete company: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

var _ repository.SiteRepository = (*SiteRepo)(nil)

const siteColumns = `id, name, location, logo, company_id, created_at, updated_at`

// SiteRepo implementación del puerto SiteRepository sobre PostgreSQL.
type SiteRepo struct {
	q Querier
}

// NewSiteRepository construye el adaptador de persistencia para sitios.
func NewSiteRepository(q Querier) *SiteRepo {
	return &SiteRepo{q: q}
}

func (r *SiteRepo) Create(ctx context.Context, s *entity.Site) error {
	query := `INSERT INTO sites (` + siteColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Location, s.Logo, s.CompanyID, s.CreatedAt, s.UpdatedAt); err != nil {
		return fmt.Errorf("insert site: %w", err)
	}
	return nil
}

func (r *SiteRepo) GetByID(ctx context.Context, id string) (*entity.Site, error) {
	s, err := scanSite(r.q.QueryRow(ctx, `SELECT `+siteColumns+` FROM sites WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site: %w", err)
	}
	return s, nil
}

func (r *SiteRepo) Update(ctx context.Context, s *entity.Site) error {
	query := `UPDATE sites SET name = $2, location = $3, logo = $4, company_id = $5, updated_at = $6 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Location, s.Logo, s.CompanyID, s.UpdatedAt); err != nil {
		return fmt.Errorf("update site: %w", err)
	}
	return nil
}

func (r *SiteRepo) List(ctx context.Context) ([]*entity.Site, error) {
	rows, err := r.q.Query(ctx, `SELECT `+siteColumns+` FROM sites ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()
	var list []*entity.Site
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SiteRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM sites WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete site: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UnlinkCompany pone company_id en NULL en todos los sitios de la empresa.
func (r *SiteRepo) UnlinkCompany(ctx context.Context, companyID string) (int64, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE sites SET company_id = NULL, updated_at = $2 WHERE company_id = $1`,
		companyID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("unlink sites: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanSite(row pgxScanner) (*entity.Site, error) {
	var s entity.Site
	if err := row.Scan(&s.ID, &s.Name, &s.Location, &s.Logo, &s.CompanyID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
