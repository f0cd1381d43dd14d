package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/naisata/servicios-api/internal/application/dto"
	"github.com/naisata/servicios-api/internal/application/ports"
	"github.com/naisata/servicios-api/internal/domain"
	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/internal/domain/repository"
)

// SiteUseCase CRUD de sitios de trabajo.
type SiteUseCase struct {
	repo      repository.SiteRepository
	tickets   repository.TicketRepository
	media     ports.MediaStore
	publisher ports.EventPublisher
	now       func() time.Time
}

// NewSiteUseCase construye el caso de uso.
func NewSiteUseCase(
	repo repository.SiteRepository,
	tickets repository.TicketRepository,
	media ports.MediaStore,
	publisher ports.EventPublisher,
) *SiteUseCase {
	return &SiteUseCase{repo: repo, tickets: tickets, media: media, publisher: publisher, now: time.Now}
}

// Create crea un sitio. companyId vacío o mal formado deja el sitio sin empresa.
func (uc *SiteUseCase) Create(ctx context.Context, in dto.CreateSiteRequest) (*dto.SiteResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	logo, err := uc.media.Store(ctx, ports.MediaLogo, in.Logo)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	site := &entity.Site{
		ID:        entity.NewID(),
		Name:      in.Name,
		Location:  in.Location,
		Logo:      logo,
		CompanyID: entity.OptionalID(in.CompanyID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, site); err != nil {
		return nil, err
	}
	out := dto.FromSite(site)
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicSites, "new_site", out))
	return out, nil
}

// GetByID obtiene un sitio por ID.
func (uc *SiteUseCase) GetByID(ctx context.Context, id string) (*dto.SiteResponse, error) {
	site, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromSite(site), nil
}

// List lista sitios, más recientes primero.
func (uc *SiteUseCase) List(ctx context.Context) ([]dto.SiteResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SiteResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *dto.FromSite(s))
	}
	return items, nil
}

// Update aplica solo los campos presentes.
func (uc *SiteUseCase) Update(ctx context.Context, id string, in dto.UpdateSiteRequest) (*dto.SiteResponse, error) {
	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		in.Name = &v
	}
	if in.Location != nil {
		v := strings.TrimSpace(*in.Location)
		in.Location = &v
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	site, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		site.Name = *in.Name
	}
	if in.Location != nil {
		site.Location = *in.Location
	}
	if in.CompanyID != nil {
		site.CompanyID = entity.OptionalID(*in.CompanyID)
	}
	return uc.save(ctx, site)
}

// UpdateLogo reemplaza el logo del sitio.
func (uc *SiteUseCase) UpdateLogo(ctx context.Context, id string, in dto.UpdateLogoRequest) (*dto.SiteResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	site, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	logo, err := uc.media.Store(ctx, ports.MediaLogo, in.Logo)
	if err != nil {
		return nil, err
	}
	site.Logo = logo
	return uc.save(ctx, site)
}

// Delete borra los tickets del sitio y después el sitio.
func (uc *SiteUseCase) Delete(ctx context.Context, id string) (*dto.DeleteResponse, error) {
	site, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	tickets, err := uc.tickets.DeleteBySite(ctx, site.ID)
	if err != nil {
		return nil, err
	}
	deleted, err := uc.repo.Delete(ctx, site.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, domain.ErrNotFound
	}
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicSites, "site_deleted", map[string]any{
		"id":                site.ID,
		"ticketsEliminados": tickets,
	}))
	return &dto.DeleteResponse{Message: "Sitio eliminado", Affected: tickets}, nil
}

func (uc *SiteUseCase) save(ctx context.Context, site *entity.Site) (*dto.SiteResponse, error) {
	site.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, site); err != nil {
		return nil, err
	}
	out := dto.FromSite(site)
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicSites, "site_updated", out))
	return out, nil
}

func (uc *SiteUseCase) get(ctx context.Context, id string) (*entity.Site, error) {
	if !entity.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	site, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}
	return site, nil
}
