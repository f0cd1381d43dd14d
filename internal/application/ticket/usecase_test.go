package ticket

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

const imagen = "data:image/png;base64,QUJD"

type recorder struct {
	mu     sync.Mutex
	events []ports.Event
}

func (r *recorder) Publish(_ context.Context, ev ports.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Name == name {
			n++
		}
	}
	return n
}

type fixture struct {
	uc    *TicketUseCase
	store *memory.Store
	rec   *recorder
}

func newFixture() *fixture {
	store := memory.NewStore()
	rec := &recorder{}
	uc := NewTicketUseCase(store.Tickets, store.Sites, store.Companies, media.NewInlineStore(), rec, 0)
	return &fixture{uc: uc, store: store, rec: rec}
}

func (f *fixture) seedSite(t *testing.T, companyID *string) *entity.Site {
	t.Helper()
	now := time.Now()
	s := &entity.Site{ID: entity.NewID(), Name: "Planta Norte", Location: "Monterrey", CompanyID: companyID, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.store.Sites.Create(context.Background(), s))
	return s
}

func (f *fixture) seedCompany(t *testing.T, name string) *entity.Company {
	t.Helper()
	now := time.Now()
	c := &entity.Company{ID: entity.NewID(), Name: name, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.store.Companies.Create(context.Background(), c))
	return c
}

func (f *fixture) create(t *testing.T, siteID string) *dto.TicketResponse {
	t.Helper()
	out, err := f.uc.Create(context.Background(), dto.CreateTicketRequest{
		Folio:       "F-001",
		Title:       "Mantenimiento preventivo",
		Description: "Revisión de tablero eléctrico",
		SiteID:      siteID,
		Photos:      []string{imagen},
	})
	require.NoError(t, err)
	return out
}

func TestCreate(t *testing.T) {
	f := newFixture()
	site := f.seedSite(t, nil)

	out := f.create(t, site.ID)
	assert.Equal(t, entity.TicketPending, out.Status)
	assert.Equal(t, []string{imagen}, out.Photos)
	assert.Nil(t, out.CompanyID)
	assert.Equal(t, 1, f.rec.count("new_ticket"))

	_, err := f.uc.Create(context.Background(), dto.CreateTicketRequest{
		Folio: "F-002", Title: "x", Description: "y", SiteID: "sitio-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "siteId mal formado")

	_, err = f.uc.Create(context.Background(), dto.CreateTicketRequest{SiteID: site.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err = f.uc.Create(context.Background(), dto.CreateTicketRequest{
		Folio: "F-003", Title: "x", Description: "y", SiteID: site.ID, CompanyID: "no-es-uuid",
	})
	require.NoError(t, err)
	assert.Nil(t, out.CompanyID, "una empresa mal formada se guarda como ausente")
}

func TestListBySite(t *testing.T) {
	f := newFixture()
	a := f.seedSite(t, nil)
	b := f.seedSite(t, nil)
	first := f.create(t, a.ID)
	second := f.create(t, a.ID)
	f.create(t, b.ID)

	list, err := f.uc.ListBySite(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	list, err = f.uc.ListBySite(context.Background(), "basura")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestFetchPublic(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	tk := f.create(t, f.seedSite(t, nil).ID)

	pub, err := f.uc.FetchPublic(ctx, tk.ID)
	require.NoError(t, err)
	assert.False(t, pub.AlreadySigned)
	assert.Equal(t, "F-001", pub.Folio)
	assert.Nil(t, pub.DownloadsRemaining)

	require.NoError(t, f.uc.Sign(ctx, tk.ID, dto.SignTicketRequest{Signature: imagen, ClientName: "Luis"}))

	pub, err = f.uc.FetchPublic(ctx, tk.ID)
	require.NoError(t, err)
	assert.True(t, pub.AlreadySigned)
	require.NotNil(t, pub.DownloadsRemaining)
	assert.Equal(t, 2, *pub.DownloadsRemaining)
	assert.Empty(t, pub.Folio, "un ticket firmado no vuelve a exponer su contenido")

	_, err = f.uc.FetchPublic(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.uc.FetchPublic(ctx, entity.NewID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSign_EscrituraUnica(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	tk := f.create(t, f.seedSite(t, nil).ID)

	err := f.uc.Sign(ctx, tk.ID, dto.SignTicketRequest{ClientName: "Luis"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	err = f.uc.Sign(ctx, entity.NewID(), dto.SignTicketRequest{Signature: imagen, ClientName: "Luis"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.uc.Sign(ctx, tk.ID, dto.SignTicketRequest{Signature: imagen, ClientName: "Luis"}))
	err = f.uc.Sign(ctx, tk.ID, dto.SignTicketRequest{Signature: imagen, ClientName: "Otro"})
	assert.ErrorIs(t, err, domain.ErrAlreadySigned)

	stored, err := f.store.Tickets.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Luis", stored.ClientName)
	assert.Equal(t, entity.TicketFinished, stored.Status)
	assert.NotNil(t, stored.SignedAt)
	assert.Equal(t, 1, f.rec.count("ticket_signed"))
}

func TestSign_ConcurrenteSoloUnaFirma(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	tk := f.create(t, f.seedSite(t, nil).ID)

	const n = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := f.uc.Sign(ctx, tk.ID, dto.SignTicketRequest{Signature: imagen, ClientName: "Cliente"})
			if err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrAlreadySigned)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, f.rec.count("ticket_signed"))
}

func TestAppendPhotos(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	tk := f.create(t, f.seedSite(t, nil).ID)

	out, err := f.uc.AppendPhotos(ctx, tk.ID, dto.AppendPhotosRequest{Photos: []string{"https://cdn.naisata.com/a.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, []string{imagen, "https://cdn.naisata.com/a.jpg"}, out.Photos)

	_, err = f.uc.AppendPhotos(ctx, tk.ID, dto.AppendPhotosRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.AppendPhotos(ctx, entity.NewID(), dto.AppendPhotosRequest{Photos: []string{imagen}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.uc.AppendPhotos(ctx, tk.ID, dto.AppendPhotosRequest{Photos: []string{"texto"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRequestDownload_Cuota(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	company := f.seedCompany(t, "Naisata")
	site := f.seedSite(t, &company.ID)
	tk := f.create(t, site.ID)

	_, err := f.uc.RequestDownload(ctx, tk.ID)
	assert.ErrorIs(t, err, domain.ErrNotYetSigned)
	_, err = f.uc.RequestDownload(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.uc.RequestDownload(ctx, entity.NewID())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.uc.Sign(ctx, tk.ID, dto.SignTicketRequest{Signature: imagen, ClientName: "Luis"}))

	res, err := f.uc.RequestDownload(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.DownloadsRemaining)
	assert.Equal(t, 1, res.Ticket.ClientDownloads)
	require.NotNil(t, res.Site)
	assert.Equal(t, site.ID, res.Site.ID)
	require.NotNil(t, res.Company)
	assert.Equal(t, "Naisata", res.Company.Name)

	res, err = f.uc.RequestDownload(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.DownloadsRemaining)

	_, err = f.uc.RequestDownload(ctx, tk.ID)
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)

	stored, err := f.store.Tickets.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.ClientDownloads)
	assert.Equal(t, 2, f.rec.count("ticket_downloaded"))
}

func TestRequestDownload_ConcurrenteRespetaTope(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	tk := f.create(t, f.seedSite(t, nil).ID)
	require.NoError(t, f.uc.Sign(ctx, tk.ID, dto.SignTicketRequest{Signature: imagen, ClientName: "Luis"}))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.uc.RequestDownload(ctx, tk.ID); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, DefaultMaxClientDownloads, ok)
}

func TestRequestDownload_EmpresaDelTicketComoRespaldo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	own := f.seedCompany(t, "Cliente Directo")
	site := f.seedSite(t, nil)

	tk, err := f.uc.Create(ctx, dto.CreateTicketRequest{
		Folio: "F-9", Title: "x", Description: "y", SiteID: site.ID, CompanyID: own.ID,
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Sign(ctx, tk.ID, dto.SignTicketRequest{Signature: imagen, ClientName: "Luis"}))

	res, err := f.uc.RequestDownload(ctx, tk.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Company)
	assert.Equal(t, own.ID, res.Company.ID)

	// Sitio borrado: la descarga sigue funcionando sin sitio.
	_, err = f.store.Sites.Delete(ctx, site.ID)
	require.NoError(t, err)
	res, err = f.uc.RequestDownload(ctx, tk.ID)
	require.NoError(t, err)
	assert.Nil(t, res.Site)
	require.NotNil(t, res.Company)
}
