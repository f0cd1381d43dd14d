package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naisata/servicios-api/internal/application/dto"
	"github.com/naisata/servicios-api/internal/application/ports"
	"github.com/naisata/servicios-api/internal/domain"
	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/internal/infrastructure/media"
	"github.com/naisata/servicios-api/internal/infrastructure/memory"
)

const logo = "data:image/png;base64,QUJD"

type recorder struct {
	mu     sync.Mutex
	events []ports.Event
}

func (r *recorder) Publish(_ context.Context, ev ports.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) last() ports.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return ports.Event{}
	}
	return r.events[len(r.events)-1]
}

func seedTicket(t *testing.T, store *memory.Store, siteID string, companyID *string) *entity.Ticket {
	t.Helper()
	now := time.Now()
	tk := &entity.Ticket{
		ID:        entity.NewID(),
		Folio:     "F-1",
		Title:     "Servicio",
		SiteID:    siteID,
		CompanyID: companyID,
		Status:    entity.TicketPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.Tickets.Create(context.Background(), tk))
	return tk
}

func TestCompanyUseCase_CRUD(t *testing.T) {
	store := memory.NewStore()
	rec := &recorder{}
	uc := NewCompanyUseCase(store.Companies, store.Sites, store.Tickets, media.NewInlineStore(), rec)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "Acme", Logo: "logo.png"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el logo debe ser una imagen")

	c, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: " Acme ", Logo: logo})
	require.NoError(t, err)
	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, "new_company", rec.last().Name)

	name := "Acme SA"
	up, err := uc.Update(ctx, c.ID, dto.UpdateCompanyRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Acme SA", up.Name)
	assert.Equal(t, logo, up.Logo, "los campos ausentes se conservan")

	got, err := uc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme SA", got.Name)

	_, err = uc.GetByID(ctx, "123")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Update(ctx, entity.NewID(), dto.UpdateCompanyRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCompanyUseCase_DeleteDesvincula(t *testing.T) {
	store := memory.NewStore()
	rec := &recorder{}
	companies := NewCompanyUseCase(store.Companies, store.Sites, store.Tickets, media.NewInlineStore(), rec)
	sites := NewSiteUseCase(store.Sites, store.Tickets, media.NewInlineStore(), rec)
	ctx := context.Background()

	c, err := companies.Create(ctx, dto.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)
	s, err := sites.Create(ctx, dto.CreateSiteRequest{Name: "Planta", Location: "Monterrey", CompanyID: c.ID})
	require.NoError(t, err)
	require.NotNil(t, s.CompanyID)
	tk := seedTicket(t, store, s.ID, &c.ID)

	res, err := companies.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Affected)
	assert.Equal(t, "company_deleted", rec.last().Name)

	site, err := store.Sites.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, site.CompanyID)
	ticket, err := store.Tickets.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Nil(t, ticket.CompanyID)

	_, err = companies.Delete(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSiteUseCase_DeleteBorraTickets(t *testing.T) {
	store := memory.NewStore()
	rec := &recorder{}
	uc := NewSiteUseCase(store.Sites, store.Tickets, media.NewInlineStore(), rec)
	ctx := context.Background()

	a, err := uc.Create(ctx, dto.CreateSiteRequest{Name: "A", Location: "CDMX"})
	require.NoError(t, err)
	b, err := uc.Create(ctx, dto.CreateSiteRequest{Name: "B", Location: "GDL"})
	require.NoError(t, err)
	seedTicket(t, store, a.ID, nil)
	seedTicket(t, store, a.ID, nil)
	keep := seedTicket(t, store, b.ID, nil)

	res, err := uc.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Affected)

	left, err := store.Tickets.ListBySite(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
	other, err := store.Tickets.GetByID(ctx, keep.ID)
	require.NoError(t, err)
	assert.NotNil(t, other)

	_, err = uc.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSiteUseCase_UpdateYLogo(t *testing.T) {
	store := memory.NewStore()
	uc := NewSiteUseCase(store.Sites, store.Tickets, media.NewInlineStore(), &recorder{})
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateSiteRequest{Name: "Sin ubicación"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	companyID := entity.NewID()
	s, err := uc.Create(ctx, dto.CreateSiteRequest{Name: "Planta", Location: "Monterrey", CompanyID: companyID})
	require.NoError(t, err)
	require.NotNil(t, s.CompanyID)

	empty := ""
	s, err = uc.Update(ctx, s.ID, dto.UpdateSiteRequest{CompanyID: &empty})
	require.NoError(t, err)
	assert.Nil(t, s.CompanyID, "companyId vacío desvincula")
	assert.Equal(t, "Planta", s.Name)

	s, err = uc.UpdateLogo(ctx, s.ID, dto.UpdateLogoRequest{Logo: logo})
	require.NoError(t, err)
	assert.Equal(t, logo, s.Logo)

	_, err = uc.UpdateLogo(ctx, s.ID, dto.UpdateLogoRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateLogo(ctx, "x", dto.UpdateLogoRequest{Logo: logo})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
