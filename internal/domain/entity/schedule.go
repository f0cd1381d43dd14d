package entity

import (
	"fmt"
	"time"
)

// ScheduleDay ventana de turno para un día de la semana (0 = domingo).
type ScheduleDay struct {
	Weekday int    `json:"dia"`
	Active  bool   `json:"activo"`
	Start   string `json:"entrada"` // HH:MM
	End     string `json:"salida"`  // HH:MM
}

// Validate verifica día y horas; las ventanas inactivas pueden omitir horas.
func (d ScheduleDay) Validate() error {
	if d.Weekday < 0 || d.Weekday > 6 {
		return fmt.Errorf("día %d fuera de rango 0-6", d.Weekday)
	}
	if !d.Active {
		return nil
	}
	start, err := ParseClock(d.Start)
	if err != nil {
		return fmt.Errorf("día %d: entrada: %w", d.Weekday, err)
	}
	end, err := ParseClock(d.End)
	if err != nil {
		return fmt.Errorf("día %d: salida: %w", d.Weekday, err)
	}
	if end <= start {
		return fmt.Errorf("día %d: la salida debe ser posterior a la entrada", d.Weekday)
	}
	return nil
}

// ParseClock convierte "HH:MM" a minutos desde medianoche.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("hora %q inválida, se espera HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Geofence centro y radio (metros) donde un registro de asistencia es válido.
type Geofence struct {
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	RadiusMeters float64 `json:"radio"`
}

// Validate verifica coordenadas y radio.
func (g Geofence) Validate() error {
	if g.Lat < -90 || g.Lat > 90 || g.Lng < -180 || g.Lng > 180 {
		return fmt.Errorf("coordenadas fuera de rango")
	}
	if g.RadiusMeters <= 0 {
		return fmt.Errorf("el radio debe ser mayor a cero")
	}
	return nil
}

// Schedule horario global nombrado (variante heredada, con geocerca opcional).
type Schedule struct {
	ID        string
	Name      string
	Days      []ScheduleDay
	Geofence  *Geofence
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateSchedule valida cada ventana y que ningún día se repita.
func ValidateSchedule(days []ScheduleDay) error {
	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if err := d.Validate(); err != nil {
			return err
		}
		if seen[d.Weekday] {
			return fmt.Errorf("día %d repetido", d.Weekday)
		}
		seen[d.Weekday] = true
	}
	return nil
}
