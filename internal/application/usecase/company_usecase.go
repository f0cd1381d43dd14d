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

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo      repository.CompanyRepository
	sites     repository.SiteRepository
	tickets   repository.TicketRepository
	media     ports.MediaStore
	publisher ports.EventPublisher
	now       func() time.Time
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
// Sitios y tickets se requieren para desvincularlos al borrar una empresa.
func NewCompanyUseCase(
	repo repository.CompanyRepository,
	sites repository.SiteRepository,
	tickets repository.TicketRepository,
	media ports.MediaStore,
	publisher ports.EventPublisher,
) *CompanyUseCase {
	return &CompanyUseCase{
		repo:      repo,
		sites:     sites,
		tickets:   tickets,
		media:     media,
		publisher: publisher,
		now:       time.Now,
	}
}

// Create crea una nueva empresa.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	logo, err := uc.media.Store(ctx, ports.MediaLogo, in.Logo)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	company := &entity.Company{
		ID:        entity.NewID(),
		Name:      in.Name,
		Logo:      logo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	out := dto.FromCompany(company)
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicCompanies, "new_company", out))
	return out, nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromCompany(company), nil
}

// List lista empresas, más recientes primero.
func (uc *CompanyUseCase) List(ctx context.Context) ([]dto.CompanyResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *dto.FromCompany(c))
	}
	return items, nil
}

// Update aplica solo los campos presentes.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	company, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Logo != nil {
		logo, err := uc.media.Store(ctx, ports.MediaLogo, *in.Logo)
		if err != nil {
			return nil, err
		}
		company.Logo = logo
	}
	company.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	out := dto.FromCompany(company)
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicCompanies, "company_updated", out))
	return out, nil
}

// Delete desvincula sitios y tickets de la empresa y después la borra.
// No hay transacción entre colecciones: si el borrado final falla, los vínculos ya se perdieron.
func (uc *CompanyUseCase) Delete(ctx context.Context, id string) (*dto.DeleteResponse, error) {
	company, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	sites, err := uc.sites.UnlinkCompany(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	tickets, err := uc.tickets.UnlinkCompany(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	deleted, err := uc.repo.Delete(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, domain.ErrNotFound
	}
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicCompanies, "company_deleted", map[string]any{
		"id":                  company.ID,
		"sitiosDesvinculados": sites,
	}))
	return &dto.DeleteResponse{Message: "Empresa eliminada", Affected: sites + tickets}, nil
}

func (uc *CompanyUseCase) get(ctx context.Context, id string) (*entity.Company, error) {
	if !entity.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}
