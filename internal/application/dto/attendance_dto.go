package dto

import (
	"time"

	"github.com/naisata/servicios-api/internal/domain/entity"
)

// UpdateTimeclockRequest reemplaza la configuración del reloj checador.
// Omitir geocerca la elimina.
type UpdateTimeclockRequest struct {
	Schedule         []entity.ScheduleDay `json:"horario" validate:"required,min=1,max=7"`
	ToleranceMinutes *int                 `json:"toleranciaMinutos" validate:"omitempty,min=0,max=240"`
	Geofence         *entity.Geofence     `json:"geocerca"`
}

// CheckInRequest registro de asistencia desde la app móvil.
type CheckInRequest struct {
	UserID   string  `json:"userId" validate:"required"`
	UserName string  `json:"userName" validate:"required,max=200"`
	Type     string  `json:"tipo" validate:"required,oneof=entrada salida"`
	Service  string  `json:"servicio" validate:"max=200"`
	Lat      float64 `json:"lat" validate:"min=-90,max=90"`
	Lng      float64 `json:"lng" validate:"min=-180,max=180"`
	Photo    string  `json:"foto"`
}

// CheckInResponse salida de un registro de asistencia.
type CheckInResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	UserName       string    `json:"userName"`
	Type           string    `json:"tipo"`
	Service        string    `json:"servicio"`
	Lat            float64   `json:"lat"`
	Lng            float64   `json:"lng"`
	Photo          string    `json:"foto,omitempty"`
	DistanceMeters *float64  `json:"distanciaMetros,omitempty"`
	Late           bool      `json:"retardo"`
	MinutesLate    int       `json:"minutosRetardo"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ListFilter filtros de igualdad opcionales (query string).
type ListFilter struct {
	UserID string `query:"userId"`
	Date   string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Status string `query:"estado" validate:"omitempty,oneof=pendiente aprobada rechazada"`
}

// ScheduleRequest alta o actualización de un horario global.
type ScheduleRequest struct {
	Name     string               `json:"nombre" validate:"required,max=120"`
	Days     []entity.ScheduleDay `json:"dias" validate:"max=7"`
	Geofence *entity.Geofence     `json:"geocerca"`
}

// ScheduleResponse salida de un horario global.
type ScheduleResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"nombre"`
	Days      []entity.ScheduleDay `json:"dias"`
	Geofence  *entity.Geofence     `json:"geocerca,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// AttendanceRequest registro pareado. ID solo se usa en sincronización:
// un id temporal del cliente se inserta como nuevo, un id del servidor se fusiona.
type AttendanceRequest struct {
	ID       string        `json:"id"`
	UserID   string        `json:"userId" validate:"required"`
	UserName string        `json:"userName" validate:"max=200"`
	Date     string        `json:"fecha" validate:"required,datetime=2006-01-02"`
	Service  string        `json:"servicio" validate:"max=200"`
	Entry    *entity.Punch `json:"entrada"`
	Exit     *entity.Punch `json:"salida"`
}

// AttendanceSyncRequest carga masiva desde el modo sin conexión.
type AttendanceSyncRequest struct {
	Records []AttendanceRequest `json:"registros" validate:"required,dive"`
}

// AttendanceResponse salida de un registro pareado.
type AttendanceResponse struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	UserName  string        `json:"userName"`
	Date      string        `json:"fecha"`
	Service   string        `json:"servicio"`
	Entry     *entity.Punch `json:"entrada"`
	Exit      *entity.Punch `json:"salida"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// AttendanceSyncResponse resultado de la sincronización.
type AttendanceSyncResponse struct {
	Inserted int                  `json:"insertados"`
	Merged   int                  `json:"actualizados"`
	IDs      map[string]string    `json:"ids"` // id del cliente -> id del servidor
	Records  []AttendanceResponse `json:"registros"`
}

// CreateVacationRequest solicitud de vacaciones.
type CreateVacationRequest struct {
	UserID    string `json:"userId"`
	UserName  string `json:"userName" validate:"max=200"`
	StartDate string `json:"fechaInicio" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"fechaFin" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"motivo" validate:"max=500"`
}

// UpdateVacationStatusRequest resolución de una solicitud (solo admin).
type UpdateVacationStatusRequest struct {
	Status string `json:"estado" validate:"required,oneof=pendiente aprobada rechazada"`
}

// VacationResponse salida de una solicitud de vacaciones.
type VacationResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	StartDate  string    `json:"fechaInicio"`
	EndDate    string    `json:"fechaFin"`
	Reason     string    `json:"motivo"`
	Status     string    `json:"estado"`
	ReviewedBy string    `json:"revisadoPor,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
