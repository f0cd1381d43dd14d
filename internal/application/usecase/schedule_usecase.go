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

// ScheduleUseCase horarios globales nombrados.
type ScheduleUseCase struct {
	repo      repository.ScheduleRepository
	publisher ports.EventPublisher
	now       func() time.Time
}

func NewScheduleUseCase(repo repository.ScheduleRepository, publisher ports.EventPublisher) *ScheduleUseCase {
	return &ScheduleUseCase{repo: repo, publisher: publisher, now: time.Now}
}

func (uc *ScheduleUseCase) Create(ctx context.Context, in dto.ScheduleRequest) (*dto.ScheduleResponse, error) {
	if err := validateSchedule(&in); err != nil {
		return nil, err
	}
	now := uc.now()
	s := &entity.Schedule{
		ID:        entity.NewID(),
		Name:      in.Name,
		Days:      in.Days,
		Geofence:  in.Geofence,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	out := dto.FromSchedule(s)
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicSchedules, "schedule_saved", out))
	return out, nil
}

func (uc *ScheduleUseCase) GetByID(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromSchedule(s), nil
}

func (uc *ScheduleUseCase) List(ctx context.Context) ([]dto.ScheduleResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ScheduleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *dto.FromSchedule(s))
	}
	return items, nil
}

// Update reemplaza nombre, días y geocerca del horario.
func (uc *ScheduleUseCase) Update(ctx context.Context, id string, in dto.ScheduleRequest) (*dto.ScheduleResponse, error) {
	if err := validateSchedule(&in); err != nil {
		return nil, err
	}
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Name = in.Name
	s.Days = in.Days
	s.Geofence = in.Geofence
	s.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	out := dto.FromSchedule(s)
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicSchedules, "schedule_saved", out))
	return out, nil
}

func (uc *ScheduleUseCase) Delete(ctx context.Context, id string) error {
	if !entity.ValidID(id) {
		return domain.ErrNotFound
	}
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicSchedules, "schedule_deleted", map[string]string{"id": id}))
	return nil
}

func (uc *ScheduleUseCase) get(ctx context.Context, id string) (*entity.Schedule, error) {
	if !entity.ValidID(id) {
		return nil, domain.ErrNotFound
	}
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func validateSchedule(in *dto.ScheduleRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(*in); err != nil {
		return err
	}
	if err := entity.ValidateSchedule(in.Days); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.Geofence != nil {
		if err := in.Geofence.Validate(); err != nil {
			return fmt.Errorf("%w: geocerca: %v", domain.ErrInvalidInput, err)
		}
	}
	return nil
}
