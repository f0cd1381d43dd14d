package memory

import (
	"context"
	"time"

	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/internal/domain/repository"
)

var (
	_ repository.CheckInRepository    = (*CheckInRepo)(nil)
	_ repository.AttendanceRepository = (*AttendanceRepo)(nil)
	_ repository.ScheduleRepository   = (*ScheduleRepo)(nil)
	_ repository.VacationRepository   = (*VacationRepo)(nil)
)

// CheckInRepo bitácora del reloj checador.
type CheckInRepo struct {
	t *table[entity.CheckIn]
}

// NewCheckInRepository construye el repositorio vacío.
func NewCheckInRepository() *CheckInRepo {
	return &CheckInRepo{t: newTable(func(c *entity.CheckIn) *entity.CheckIn {
		v := *c
		if c.DistanceMeters != nil {
			d := *c.DistanceMeters
			v.DistanceMeters = &d
		}
		return &v
	}, func(c *entity.CheckIn) time.Time { return c.CreatedAt })}
}

func (r *CheckInRepo) Create(_ context.Context, c *entity.CheckIn) error {
	r.t.insert(c.ID, c)
	return nil
}

// List filtra por usuario y por día calendario (UTC) de creación.
func (r *CheckInRepo) List(_ context.Context, f repository.AttendanceFilter) ([]*entity.CheckIn, error) {
	return r.t.list(func(c *entity.CheckIn) bool {
		if f.UserID != "" && c.UserID != f.UserID {
			return false
		}
		if f.Date != "" && c.CreatedAt.UTC().Format("2006-01-02") != f.Date {
			return false
		}
		return true
	}), nil
}

// AttendanceRepo registros pareados.
type AttendanceRepo struct {
	t *table[entity.Attendance]
}

// NewAttendanceRepository construye el repositorio vacío.
func NewAttendanceRepository() *AttendanceRepo {
	return &AttendanceRepo{t: newTable(func(a *entity.Attendance) *entity.Attendance {
		v := *a
		v.Entry = clonePunch(a.Entry)
		v.Exit = clonePunch(a.Exit)
		return &v
	}, func(a *entity.Attendance) time.Time { return a.CreatedAt })}
}

func (r *AttendanceRepo) Create(_ context.Context, a *entity.Attendance) error {
	r.t.insert(a.ID, a)
	return nil
}

func (r *AttendanceRepo) GetByID(_ context.Context, id string) (*entity.Attendance, error) {
	return r.t.get(id), nil
}

func (r *AttendanceRepo) Update(_ context.Context, a *entity.Attendance) error {
	r.t.replace(a.ID, a)
	return nil
}

func (r *AttendanceRepo) List(_ context.Context, f repository.AttendanceFilter) ([]*entity.Attendance, error) {
	return r.t.list(func(a *entity.Attendance) bool {
		return (f.UserID == "" || a.UserID == f.UserID) && (f.Date == "" || a.Date == f.Date)
	}), nil
}

// ScheduleRepo horarios globales.
type ScheduleRepo struct {
	t *table[entity.Schedule]
}

// NewScheduleRepository construye el repositorio vacío.
func NewScheduleRepository() *ScheduleRepo {
	return &ScheduleRepo{t: newTable(func(s *entity.Schedule) *entity.Schedule {
		v := *s
		v.Days = cloneDays(s.Days)
		v.Geofence = cloneGeofence(s.Geofence)
		return &v
	}, func(s *entity.Schedule) time.Time { return s.CreatedAt })}
}

func (r *ScheduleRepo) Create(_ context.Context, s *entity.Schedule) error {
	r.t.insert(s.ID, s)
	return nil
}

func (r *ScheduleRepo) GetByID(_ context.Context, id string) (*entity.Schedule, error) {
	return r.t.get(id), nil
}

func (r *ScheduleRepo) Update(_ context.Context, s *entity.Schedule) error {
	r.t.replace(s.ID, s)
	return nil
}

func (r *ScheduleRepo) List(_ context.Context) ([]*entity.Schedule, error) {
	return r.t.list(nil), nil
}

func (r *ScheduleRepo) Delete(_ context.Context, id string) (bool, error) {
	return r.t.delete(id), nil
}

// VacationRepo solicitudes de vacaciones.
type VacationRepo struct {
	t *table[entity.Vacation]
}

// NewVacationRepository construye el repositorio vacío.
func NewVacationRepository() *VacationRepo {
	return &VacationRepo{t: newTable(func(v *entity.Vacation) *entity.Vacation {
		c := *v
		return &c
	}, func(v *entity.Vacation) time.Time { return v.CreatedAt })}
}

func (r *VacationRepo) Create(_ context.Context, v *entity.Vacation) error {
	r.t.insert(v.ID, v)
	return nil
}

func (r *VacationRepo) GetByID(_ context.Context, id string) (*entity.Vacation, error) {
	return r.t.get(id), nil
}

func (r *VacationRepo) List(_ context.Context, f repository.VacationFilter) ([]*entity.Vacation, error) {
	return r.t.list(func(v *entity.Vacation) bool {
		return (f.UserID == "" || v.UserID == f.UserID) && (f.Status == "" || v.Status == f.Status)
	}), nil
}

func (r *VacationRepo) UpdateStatus(_ context.Context, id, status, reviewedBy string, now time.Time) (*entity.Vacation, error) {
	return r.t.mutate(id, func(v *entity.Vacation) bool {
		v.Status = status
		v.ReviewedBy = reviewedBy
		v.UpdatedAt = now
		return true
	}), nil
}
