package repository

import (
	"context"

	"github.com/naisata/servicios-api/internal/domain/entity"
)

// AttendanceFilter filtro de igualdad opcional para listados de asistencia.
type AttendanceFilter struct {
	UserID string
	Date   string // YYYY-MM-DD
}

// CheckInRepository bitácora de solo inserción de registros del reloj checador.
type CheckInRepository interface {
	Create(ctx context.Context, c *entity.CheckIn) error
	List(ctx context.Context, f AttendanceFilter) ([]*entity.CheckIn, error)
}

// AttendanceRepository registros pareados entrada/salida (variante heredada).
type AttendanceRepository interface {
	Create(ctx context.Context, a *entity.Attendance) error
	GetByID(ctx context.Context, id string) (*entity.Attendance, error)
	Update(ctx context.Context, a *entity.Attendance) error
	List(ctx context.Context, f AttendanceFilter) ([]*entity.Attendance, error)
}

// ScheduleRepository horarios globales nombrados (variante heredada).
type ScheduleRepository interface {
	Create(ctx context.Context, s *entity.Schedule) error
	GetByID(ctx context.Context, id string) (*entity.Schedule, error)
	Update(ctx context.Context, s *entity.Schedule) error
	List(ctx context.Context) ([]*entity.Schedule, error)
	Delete(ctx context.Context, id string) (bool, error)
}
