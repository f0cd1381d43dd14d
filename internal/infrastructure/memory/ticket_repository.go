package memory

import (
	"context"
	"time"

	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/internal/domain/repository"
)

var _ repository.TicketRepository = (*TicketRepo)(nil)

// TicketRepo tickets en memoria. Firma y descargas se resuelven bajo el mismo
// candado que la lectura, igual que el UPDATE condicional del adaptador SQL.
type TicketRepo struct {
	t *table[entity.Ticket]
}

// NewTicketRepository construye el repositorio vacío.
func NewTicketRepository() *TicketRepo {
	return &TicketRepo{t: newTable(func(t *entity.Ticket) *entity.Ticket {
		v := *t
		v.CompanyID = cloneStrPtr(t.CompanyID)
		v.SignedAt = cloneTimePtr(t.SignedAt)
		if t.Photos != nil {
			v.Photos = append([]string(nil), t.Photos...)
		}
		return &v
	}, func(t *entity.Ticket) time.Time { return t.CreatedAt })}
}

func (r *TicketRepo) Create(_ context.Context, t *entity.Ticket) error {
	r.t.insert(t.ID, t)
	return nil
}

func (r *TicketRepo) GetByID(_ context.Context, id string) (*entity.Ticket, error) {
	return r.t.get(id), nil
}

func (r *TicketRepo) ListBySite(_ context.Context, siteID string) ([]*entity.Ticket, error) {
	return r.t.list(func(t *entity.Ticket) bool { return t.SiteID == siteID }), nil
}

func (r *TicketRepo) AppendPhotos(_ context.Context, id string, photos []string, now time.Time) (*entity.Ticket, error) {
	return r.t.mutate(id, func(t *entity.Ticket) bool {
		t.Photos = append(t.Photos, photos...)
		t.UpdatedAt = now
		return true
	}), nil
}

func (r *TicketRepo) SignIfUnsigned(_ context.Context, id, signature, clientName string, now time.Time) (bool, error) {
	t := r.t.mutate(id, func(t *entity.Ticket) bool {
		if t.ClientSignature != "" {
			return false
		}
		t.ClientSignature = signature
		t.ClientName = clientName
		t.Status = entity.TicketFinished
		signedAt := now
		t.SignedAt = &signedAt
		t.UpdatedAt = now
		return true
	})
	return t != nil, nil
}

func (r *TicketRepo) IncrementDownloads(_ context.Context, id string, max int, now time.Time) (*entity.Ticket, error) {
	return r.t.mutate(id, func(t *entity.Ticket) bool {
		if t.ClientSignature == "" || t.ClientDownloads >= max {
			return false
		}
		t.ClientDownloads++
		t.UpdatedAt = now
		return true
	}), nil
}

func (r *TicketRepo) DeleteBySite(_ context.Context, siteID string) (int64, error) {
	return r.t.deleteWhere(func(t *entity.Ticket) bool { return t.SiteID == siteID }), nil
}

func (r *TicketRepo) UnlinkCompany(_ context.Context, companyID string) (int64, error) {
	now := time.Now()
	return r.t.mutateWhere(
		func(t *entity.Ticket) bool { return entity.IDValue(t.CompanyID) == companyID },
		func(t *entity.Ticket) {
			t.CompanyID = nil
			t.UpdatedAt = now
		},
	), nil
}
