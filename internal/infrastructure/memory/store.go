// Package memory implementa los puertos de repositorio sobre mapas en memoria.
// Se usa en pruebas y con STORE_DRIVER=memory para demos locales; los datos se
// pierden al reiniciar el proceso.
package memory

import (
	"time"

	"github.com/naisata/servicios-api/internal/domain/entity"
)

// Store agrupa todos los repositorios en memoria de una instancia.
type Store struct {
	Users      *UserRepo
	Companies  *CompanyRepo
	Sites      *SiteRepo
	Tickets    *TicketRepo
	Settings   *SettingsRepo
	CheckIns   *CheckInRepo
	Attendance *AttendanceRepo
	Schedules  *ScheduleRepo
	Vacations  *VacationRepo
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		Users:      NewUserRepository(),
		Companies:  NewCompanyRepository(),
		Sites:      NewSiteRepository(),
		Tickets:    NewTicketRepository(),
		Settings:   NewSettingsRepository(),
		CheckIns:   NewCheckInRepository(),
		Attendance: NewAttendanceRepository(),
		Schedules:  NewScheduleRepository(),
		Vacations:  NewVacationRepository(),
	}
}

func cloneStrPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneDays(days []entity.ScheduleDay) []entity.ScheduleDay {
	if days == nil {
		return nil
	}
	return append([]entity.ScheduleDay(nil), days...)
}

func cloneGeofence(g *entity.Geofence) *entity.Geofence {
	if g == nil {
		return nil
	}
	v := *g
	return &v
}

func clonePunch(p *entity.Punch) *entity.Punch {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
