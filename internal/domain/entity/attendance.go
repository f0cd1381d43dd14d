package entity

import "time"

// Tipos de registro de asistencia.
const (
	CheckInEntry = "entrada"
	CheckOutExit = "salida"
)

// TimeclockSettingsVersion versión vigente del registro de configuración del reloj checador.
const TimeclockSettingsVersion = 2

// TimeclockSettings configuración única del reloj checador.
// Los campos opcionales se completan con valores por defecto al leer (ver WithDefaults).
type TimeclockSettings struct {
	Version          int           `json:"version"`
	Schedule         []ScheduleDay `json:"horario"`
	ToleranceMinutes *int          `json:"toleranciaMinutos,omitempty"`
	Geofence         *Geofence     `json:"geocerca,omitempty"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// DefaultToleranceMinutes tolerancia aplicada cuando la configuración no la define.
const DefaultToleranceMinutes = 15

// DefaultTimeclockSettings lunes a viernes 09:00-18:00, sábado medio día, domingo libre.
func DefaultTimeclockSettings(now time.Time) TimeclockSettings {
	days := make([]ScheduleDay, 0, 7)
	for wd := 0; wd <= 6; wd++ {
		switch wd {
		case 0:
			days = append(days, ScheduleDay{Weekday: wd, Active: false})
		case 6:
			days = append(days, ScheduleDay{Weekday: wd, Active: true, Start: "09:00", End: "14:00"})
		default:
			days = append(days, ScheduleDay{Weekday: wd, Active: true, Start: "09:00", End: "18:00"})
		}
	}
	tol := DefaultToleranceMinutes
	return TimeclockSettings{
		Version:          TimeclockSettingsVersion,
		Schedule:         days,
		ToleranceMinutes: &tol,
		UpdatedAt:        now,
	}
}

// WithDefaults completa campos ausentes de registros de versiones anteriores.
func (s TimeclockSettings) WithDefaults() TimeclockSettings {
	if s.ToleranceMinutes == nil {
		tol := DefaultToleranceMinutes
		s.ToleranceMinutes = &tol
	}
	if len(s.Schedule) == 0 {
		s.Schedule = DefaultTimeclockSettings(s.UpdatedAt).Schedule
	}
	s.Version = TimeclockSettingsVersion
	return s
}

// Day devuelve la ventana configurada para el día de la semana dado.
func (s TimeclockSettings) Day(wd time.Weekday) (ScheduleDay, bool) {
	for _, d := range s.Schedule {
		if d.Weekday == int(wd) {
			return d, true
		}
	}
	return ScheduleDay{}, false
}

// CheckIn evento único de asistencia (una fila por escaneo).
type CheckIn struct {
	ID             string
	UserID         string
	UserName       string
	Type           string // entrada | salida
	Service        string
	Lat            float64
	Lng            float64
	Photo          string
	DistanceMeters *float64
	Late           bool
	MinutesLate    int
	CreatedAt      time.Time
}

// Punch marca de entrada o salida de un registro pareado.
type Punch struct {
	Time  time.Time `json:"hora"`
	Lat   float64   `json:"lat"`
	Lng   float64   `json:"lng"`
	Photo string    `json:"foto,omitempty"`
}

// Attendance registro pareado entrada/salida (variante heredada).
type Attendance struct {
	ID        string
	UserID    string
	UserName  string
	Date      string // YYYY-MM-DD
	Service   string
	Entry     *Punch
	Exit      *Punch
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Estados de una solicitud de vacaciones.
const (
	VacationPending  = "pendiente"
	VacationApproved = "aprobada"
	VacationRejected = "rechazada"
)

// ValidVacationStatus informa si s es un estado conocido.
func ValidVacationStatus(s string) bool {
	return s == VacationPending || s == VacationApproved || s == VacationRejected
}

// Vacation solicitud de vacaciones de un empleado.
type Vacation struct {
	ID         string
	UserID     string
	UserName   string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     string
	ReviewedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
