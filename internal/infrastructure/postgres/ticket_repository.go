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

var _ repository.TicketRepository = (*TicketRepo)(nil)

const ticketColumns = `id, folio, title, description, site_id, salesperson, company_id, photos,
	technician_signature, technician_name, COALESCE(client_signature, ''), client_name, status,
	client_downloads, signed_at, created_at, updated_at`

// TicketRepo implementación del puerto TicketRepository sobre PostgreSQL.
// Firma y descargas son UPDATE condicionales de una sola sentencia.
type TicketRepo struct {
	q Querier
}

// NewTicketRepository construye el adaptador de persistencia para tickets.
func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

// Create persiste un ticket nuevo.
func (r *TicketRepo) Create(ctx context.Context, t *entity.Ticket) error {
	photos, err := toJSON(nonNilPhotos(t.Photos))
	if err != nil {
		return err
	}
	query := `
		INSERT INTO tickets (id, folio, title, description, site_id, salesperson, company_id, photos,
			technician_signature, technician_name, client_signature, client_name, status,
			client_downloads, signed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err = r.q.Exec(ctx, query,
		t.ID, t.Folio, t.Title, t.Description, t.SiteID, t.Salesperson, t.CompanyID, photos,
		t.TechnicianSignature, t.TechnicianName, nullIfEmpty(t.ClientSignature), t.ClientName, t.Status,
		t.ClientDownloads, t.SignedAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// GetByID obtiene un ticket por ID; nil si no existe.
func (r *TicketRepo) GetByID(ctx context.Context, id string) (*entity.Ticket, error) {
	t, err := scanTicket(r.q.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return t, nil
}

// ListBySite lista tickets de un sitio, más recientes primero.
func (r *TicketRepo) ListBySite(ctx context.Context, siteID string) ([]*entity.Ticket, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE site_id = $1 ORDER BY created_at DESC`, siteID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// AppendPhotos concatena al final del arreglo JSONB en la misma sentencia.
func (r *TicketRepo) AppendPhotos(ctx context.Context, id string, photos []string, now time.Time) (*entity.Ticket, error) {
	raw, err := toJSON(nonNilPhotos(photos))
	if err != nil {
		return nil, err
	}
	t, err := scanTicket(r.q.QueryRow(ctx,
		`UPDATE tickets SET photos = photos || $2::jsonb, updated_at = $3 WHERE id = $1 RETURNING `+ticketColumns,
		id, raw, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("append photos: %w", err)
	}
	return t, nil
}

// SignIfUnsigned escribe la firma del cliente solo si client_signature es NULL.
func (r *TicketRepo) SignIfUnsigned(ctx context.Context, id, signature, clientName string, now time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE tickets
		SET client_signature = $2, client_name = $3, status = $4, signed_at = $5, updated_at = $5
		WHERE id = $1 AND client_signature IS NULL`,
		id, signature, clientName, entity.TicketFinished, now)
	if err != nil {
		return false, fmt.Errorf("sign ticket: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// IncrementDownloads suma una descarga si el ticket está firmado y no alcanzó max.
func (r *TicketRepo) IncrementDownloads(ctx context.Context, id string, max int, now time.Time) (*entity.Ticket, error) {
	t, err := scanTicket(r.q.QueryRow(ctx, `
		UPDATE tickets
		SET client_downloads = client_downloads + 1, updated_at = $3
		WHERE id = $1 AND client_signature IS NOT NULL AND client_downloads < $2
		RETURNING `+ticketColumns,
		id, max, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("increment downloads: %w", err)
	}
	return t, nil
}

// DeleteBySite elimina los tickets del sitio (cascada aplicada desde la aplicación).
func (r *TicketRepo) DeleteBySite(ctx context.Context, siteID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM tickets WHERE site_id = $1`, siteID)
	if err != nil {
		return 0, fmt.Errorf("delete tickets by site: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UnlinkCompany pone company_id en NULL en los tickets de la empresa.
func (r *TicketRepo) UnlinkCompany(ctx context.Context, companyID string) (int64, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE tickets SET company_id = NULL, updated_at = $2 WHERE company_id = $1`,
		companyID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("unlink tickets: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanTicket(row pgxScanner) (*entity.Ticket, error) {
	var t entity.Ticket
	var photos []byte
	err := row.Scan(
		&t.ID, &t.Folio, &t.Title, &t.Description, &t.SiteID, &t.Salesperson, &t.CompanyID, &photos,
		&t.TechnicianSignature, &t.TechnicianName, &t.ClientSignature, &t.ClientName, &t.Status,
		&t.ClientDownloads, &t.SignedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := fromJSON(photos, &t.Photos); err != nil {
		return nil, err
	}
	return &t, nil
}

func nonNilPhotos(p []string) []string {
	if p == nil {
		return []string{}
	}
	return p
}
