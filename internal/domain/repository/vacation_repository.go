package repository

import (
	"context"
	"time"

	"github.com/naisata/servicios-api/internal/domain/entity"
)

// VacationFilter filtro opcional para listados de vacaciones.
type VacationFilter struct {
	UserID string
	Status string
}

// VacationRepository define el puerto de persistencia para solicitudes de vacaciones.
type VacationRepository interface {
	Create(ctx context.Context, v *entity.Vacation) error
	GetByID(ctx context.Context, id string) (*entity.Vacation, error)
	List(ctx context.Context, f VacationFilter) ([]*entity.Vacation, error)
	UpdateStatus(ctx context.Context, id, status, reviewedBy string, now time.Time) (*entity.Vacation, error)
}
