package ticket

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/naisata/servicios-api/internal/application/dto"
	"github.com/naisata/servicios-api/internal/application/ports"
	"github.com/naisata/servicios-api/internal/domain"
	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/internal/domain/repository"
)

// DefaultMaxClientDownloads tope de descargas del PDF por parte del cliente.
const DefaultMaxClientDownloads = 2

// TicketUseCase ciclo de vida del ticket: alta, firma remota del cliente y descargas limitadas.
type TicketUseCase struct {
	tickets      repository.TicketRepository
	sites        repository.SiteRepository
	companies    repository.CompanyRepository
	media        ports.MediaStore
	publisher    ports.EventPublisher
	maxDownloads int
	now          func() time.Time
}

// NewTicketUseCase construye el caso de uso. maxDownloads <= 0 usa DefaultMaxClientDownloads.
func NewTicketUseCase(
	tickets repository.TicketRepository,
	sites repository.SiteRepository,
	companies repository.CompanyRepository,
	media ports.MediaStore,
	publisher ports.EventPublisher,
	maxDownloads int,
) *TicketUseCase {
	if maxDownloads <= 0 {
		maxDownloads = DefaultMaxClientDownloads
	}
	return &TicketUseCase{
		tickets:      tickets,
		sites:        sites,
		companies:    companies,
		media:        media,
		publisher:    publisher,
		maxDownloads: maxDownloads,
		now:          time.Now,
	}
}

// Create registra un ticket pendiente de firma del cliente.
func (uc *TicketUseCase) Create(ctx context.Context, in dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	in.Folio = strings.TrimSpace(in.Folio)
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.SiteID = strings.TrimSpace(in.SiteID)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !entity.ValidID(in.SiteID) {
		return nil, fmt.Errorf("%w: siteId no es un identificador válido", domain.ErrInvalidInput)
	}

	photos, err := uc.storePhotos(ctx, in.Photos)
	if err != nil {
		return nil, err
	}
	techSignature, err := uc.media.Store(ctx, ports.MediaSignature, in.TechnicianSignature)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	t := &entity.Ticket{
		ID:                  entity.NewID(),
		Folio:               in.Folio,
		Title:               in.Title,
		Description:         in.Description,
		SiteID:              in.SiteID,
		Salesperson:         strings.TrimSpace(in.Salesperson),
		CompanyID:           entity.OptionalID(in.CompanyID),
		Photos:              photos,
		TechnicianSignature: techSignature,
		TechnicianName:      strings.TrimSpace(in.TechnicianName),
		Status:              entity.TicketPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.tickets.Create(ctx, t); err != nil {
		return nil, err
	}

	out := dto.FromTicket(t)
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicTickets, "new_ticket", out))
	return out, nil
}

// ListBySite tickets del sitio, más recientes primero. Un id mal formado no tiene tickets.
func (uc *TicketUseCase) ListBySite(ctx context.Context, siteID string) ([]dto.TicketResponse, error) {
	items := make([]dto.TicketResponse, 0)
	if !entity.ValidID(siteID) {
		return items, nil
	}
	list, err := uc.tickets.ListBySite(ctx, siteID)
	if err != nil {
		return nil, err
	}
	for _, t := range list {
		items = append(items, *dto.FromTicket(t))
	}
	return items, nil
}

// FetchPublic proyección para la liga de firma remota. Si el ticket ya fue firmado
// no es un error: se informa cuántas descargas le quedan al cliente.
func (uc *TicketUseCase) FetchPublic(ctx context.Context, id string) (*dto.PublicTicketResponse, error) {
	t, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.IsSigned() {
		remaining := t.DownloadsRemaining(uc.maxDownloads)
		return &dto.PublicTicketResponse{
			ID:                 t.ID,
			AlreadySigned:      true,
			DownloadsRemaining: &remaining,
		}, nil
	}
	photos := t.Photos
	if photos == nil {
		photos = []string{}
	}
	return &dto.PublicTicketResponse{
		ID:          t.ID,
		Folio:       t.Folio,
		Title:       t.Title,
		Description: t.Description,
		Photos:      photos,
	}, nil
}

// Sign guarda la firma del cliente una sola vez y cierra el ticket.
// Errores: ErrInvalidInput, ErrNotFound, ErrAlreadySigned.
func (uc *TicketUseCase) Sign(ctx context.Context, id string, in dto.SignTicketRequest) error {
	in.ClientName = strings.TrimSpace(in.ClientName)
	if err := dto.Validate(in); err != nil {
		return err
	}
	t, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if t.IsSigned() {
		return domain.ErrAlreadySigned
	}

	signature, err := uc.media.Store(ctx, ports.MediaSignature, in.Signature)
	if err != nil {
		return err
	}
	ok, err := uc.tickets.SignIfUnsigned(ctx, t.ID, signature, in.ClientName, uc.now())
	if err != nil {
		return err
	}
	if !ok {
		// Otra firma ganó entre la lectura y la escritura condicional.
		return domain.ErrAlreadySigned
	}
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicTickets, "ticket_signed", map[string]string{"ticketId": t.ID}))
	return nil
}

// AppendPhotos agrega evidencia al final de la lista existente.
func (uc *TicketUseCase) AppendPhotos(ctx context.Context, id string, in dto.AppendPhotosRequest) (*dto.TicketResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !entity.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	photos, err := uc.storePhotos(ctx, in.Photos)
	if err != nil {
		return nil, err
	}
	t, err := uc.tickets.AppendPhotos(ctx, id, photos, uc.now())
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromTicket(t)
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicTickets, "ticket_updated", out))
	return out, nil
}

// RequestDownload consume una descarga del cliente y devuelve los datos para armar el PDF.
// Errores: ErrNotFound, ErrNotYetSigned, ErrQuotaExceeded.
func (uc *TicketUseCase) RequestDownload(ctx context.Context, id string) (*dto.TicketDownloadResponse, error) {
	if !entity.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	t, err := uc.tickets.IncrementDownloads(ctx, id, uc.maxDownloads, uc.now())
	if err != nil {
		return nil, err
	}
	if t == nil {
		// La condición no se cumplió: averiguar cuál para responder con el error correcto.
		current, err := uc.tickets.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		switch {
		case current == nil:
			return nil, domain.ErrNotFound
		case !current.IsSigned():
			return nil, domain.ErrNotYetSigned
		default:
			return nil, domain.ErrQuotaExceeded
		}
	}

	site, company, err := uc.resolveOwners(ctx, t)
	if err != nil {
		return nil, err
	}
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicTickets, "ticket_downloaded", map[string]any{
		"ticketId":            t.ID,
		"descargasPdfCliente": t.ClientDownloads,
	}))
	return &dto.TicketDownloadResponse{
		Ticket:             *dto.FromTicket(t),
		Site:               dto.FromSite(site),
		Company:            dto.FromCompany(company),
		DownloadsRemaining: t.DownloadsRemaining(uc.maxDownloads),
	}, nil
}

// resolveOwners busca sitio y empresa. La empresa se toma del sitio y, si no resuelve,
// de la referencia propia del ticket. Ids mal formados cuentan como ausentes.
func (uc *TicketUseCase) resolveOwners(ctx context.Context, t *entity.Ticket) (*entity.Site, *entity.Company, error) {
	var site *entity.Site
	if entity.ValidID(t.SiteID) {
		s, err := uc.sites.GetByID(ctx, t.SiteID)
		if err != nil {
			return nil, nil, err
		}
		site = s
	}

	candidates := make([]string, 0, 2)
	if site != nil {
		candidates = append(candidates, entity.IDValue(site.CompanyID))
	}
	candidates = append(candidates, entity.IDValue(t.CompanyID))
	for _, cid := range candidates {
		if !entity.ValidID(cid) {
			continue
		}
		c, err := uc.companies.GetByID(ctx, cid)
		if err != nil {
			return nil, nil, err
		}
		if c != nil {
			return site, c, nil
		}
	}
	return site, nil, nil
}

func (uc *TicketUseCase) get(ctx context.Context, id string) (*entity.Ticket, error) {
	if !entity.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	t, err := uc.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (uc *TicketUseCase) storePhotos(ctx context.Context, photos []string) ([]string, error) {
	out := make([]string, 0, len(photos))
	for i, p := range photos {
		if p == "" {
			continue
		}
		stored, err := uc.media.Store(ctx, ports.MediaPhoto, p)
		if err != nil {
			return nil, fmt.Errorf("foto %d: %w", i+1, err)
		}
		out = append(out, stored)
	}
	return out, nil
}
