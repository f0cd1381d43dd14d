package dto

import (
	"github.com/naisata/servicios-api/internal/domain/entity"
)

// DateLayout formato de fechas de calendario en la API.
const DateLayout = "2006-01-02"

// FromUser convierte una entidad a su salida pública (nunca expone hash ni firma).
func FromUser(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	schedule := u.Schedule
	if schedule == nil {
		schedule = []entity.ScheduleDay{}
	}
	return &UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Surname:      u.Surname,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         u.Role,
		Schedule:     schedule,
		HasPassword:  u.HasPassword(),
		HasSignature: u.HasSignature(),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// FromCompany convierte una empresa a su salida.
func FromCompany(c *entity.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Logo:      c.Logo,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromSite convierte un sitio a su salida.
func FromSite(s *entity.Site) *SiteResponse {
	if s == nil {
		return nil
	}
	return &SiteResponse{
		ID:        s.ID,
		Name:      s.Name,
		Location:  s.Location,
		Logo:      s.Logo,
		CompanyID: s.CompanyID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromTicket convierte un ticket a su salida completa.
func FromTicket(t *entity.Ticket) *TicketResponse {
	if t == nil {
		return nil
	}
	photos := t.Photos
	if photos == nil {
		photos = []string{}
	}
	return &TicketResponse{
		ID:                  t.ID,
		Folio:               t.Folio,
		Title:               t.Title,
		Description:         t.Description,
		SiteID:              t.SiteID,
		Salesperson:         t.Salesperson,
		CompanyID:           t.CompanyID,
		Photos:              photos,
		TechnicianSignature: t.TechnicianSignature,
		TechnicianName:      t.TechnicianName,
		ClientSignature:     t.ClientSignature,
		ClientName:          t.ClientName,
		Status:              t.Status,
		ClientDownloads:     t.ClientDownloads,
		SignedAt:            t.SignedAt,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

// FromCheckIn convierte un registro del reloj checador a su salida.
func FromCheckIn(c *entity.CheckIn) *CheckInResponse {
	if c == nil {
		return nil
	}
	return &CheckInResponse{
		ID:             c.ID,
		UserID:         c.UserID,
		UserName:       c.UserName,
		Type:           c.Type,
		Service:        c.Service,
		Lat:            c.Lat,
		Lng:            c.Lng,
		Photo:          c.Photo,
		DistanceMeters: c.DistanceMeters,
		Late:           c.Late,
		MinutesLate:    c.MinutesLate,
		CreatedAt:      c.CreatedAt,
	}
}

// FromSchedule convierte un horario global a su salida.
func FromSchedule(s *entity.Schedule) *ScheduleResponse {
	if s == nil {
		return nil
	}
	days := s.Days
	if days == nil {
		days = []entity.ScheduleDay{}
	}
	return &ScheduleResponse{
		ID:        s.ID,
		Name:      s.Name,
		Days:      days,
		Geofence:  s.Geofence,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromAttendance convierte un registro pareado a su salida.
func FromAttendance(a *entity.Attendance) *AttendanceResponse {
	if a == nil {
		return nil
	}
	return &AttendanceResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		UserName:  a.UserName,
		Date:      a.Date,
		Service:   a.Service,
		Entry:     a.Entry,
		Exit:      a.Exit,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// FromVacation convierte una solicitud de vacaciones a su salida.
func FromVacation(v *entity.Vacation) *VacationResponse {
	if v == nil {
		return nil
	}
	return &VacationResponse{
		ID:         v.ID,
		UserID:     v.UserID,
		UserName:   v.UserName,
		StartDate:  v.StartDate.Format(DateLayout),
		EndDate:    v.EndDate.Format(DateLayout),
		Reason:     v.Reason,
		Status:     v.Status,
		ReviewedBy: v.ReviewedBy,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}
