package usecase

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

// VacationUseCase solicitudes de vacaciones y su resolución por un admin.
type VacationUseCase struct {
	repo      repository.VacationRepository
	publisher ports.EventPublisher
	now       func() time.Time
}

func NewVacationUseCase(repo repository.VacationRepository, publisher ports.EventPublisher) *VacationUseCase {
	return &VacationUseCase{repo: repo, publisher: publisher, now: time.Now}
}

// Create registra una solicitud pendiente. fechaInicio no puede ser posterior a fechaFin.
func (uc *VacationUseCase) Create(ctx context.Context, in dto.CreateVacationRequest) (*dto.VacationResponse, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: userId es requerido", domain.ErrInvalidInput)
	}
	start, _ := time.Parse(dto.DateLayout, in.StartDate)
	end, _ := time.Parse(dto.DateLayout, in.EndDate)
	if start.After(end) {
		return nil, fmt.Errorf("%w: fechaInicio es posterior a fechaFin", domain.ErrInvalidInput)
	}
	now := uc.now()
	v := &entity.Vacation{
		ID:        entity.NewID(),
		UserID:    in.UserID,
		UserName:  strings.TrimSpace(in.UserName),
		StartDate: start,
		EndDate:   end,
		Reason:    strings.TrimSpace(in.Reason),
		Status:    entity.VacationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	out := dto.FromVacation(v)
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicVacations, "new_vacation", out))
	return out, nil
}

func (uc *VacationUseCase) List(ctx context.Context, f dto.ListFilter) ([]dto.VacationResponse, error) {
	if err := dto.Validate(f); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, repository.VacationFilter{UserID: f.UserID, Status: f.Status})
	if err != nil {
		return nil, err
	}
	items := make([]dto.VacationResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *dto.FromVacation(v))
	}
	return items, nil
}

// UpdateStatus fija el estado de la solicitud. Un admin puede cambiar una decisión previa.
func (uc *VacationUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateVacationStatusRequest, reviewer string) (*dto.VacationResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !entity.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	v, err := uc.repo.UpdateStatus(ctx, id, in.Status, reviewer, uc.now())
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromVacation(v)
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicVacations, "vacation_updated", out))
	return out, nil
}
