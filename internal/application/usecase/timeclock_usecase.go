package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/naisata/servicios-api/internal/application/dto"
	"github.com/naisata/servicios-api/internal/application/ports"
	"github.com/naisata/servicios-api/internal/domain"
	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/internal/domain/geo"
	"github.com/naisata/servicios-api/internal/domain/repository"
)

// TimeclockUseCase configuración del reloj checador y registro de entradas/salidas.
type TimeclockUseCase struct {
	settings  repository.SettingsRepository
	checkIns  repository.CheckInRepository
	media     ports.MediaStore
	publisher ports.EventPublisher
	loc       *time.Location
	now       func() time.Time
}

// NewTimeclockUseCase construye el caso de uso. loc es la zona horaria de los turnos;
// nil usa UTC.
func NewTimeclockUseCase(
	settings repository.SettingsRepository,
	checkIns repository.CheckInRepository,
	media ports.MediaStore,
	publisher ports.EventPublisher,
	loc *time.Location,
) *TimeclockUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &TimeclockUseCase{
		settings:  settings,
		checkIns:  checkIns,
		media:     media,
		publisher: publisher,
		loc:       loc,
		now:       time.Now,
	}
}

// GetSettings devuelve la configuración vigente. La primera lectura guarda los valores por defecto.
func (uc *TimeclockUseCase) GetSettings(ctx context.Context) (*entity.TimeclockSettings, error) {
	raw, err := uc.settings.Get(ctx, repository.SettingsTimeclock)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		def, err := json.Marshal(entity.DefaultTimeclockSettings(uc.now().UTC()))
		if err != nil {
			return nil, err
		}
		// Si otra instancia lo creó primero, gana su documento.
		if raw, err = uc.settings.InsertIfAbsent(ctx, repository.SettingsTimeclock, def); err != nil {
			return nil, err
		}
	}
	var s entity.TimeclockSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decodificar configuración del reloj: %w", err)
	}
	s = s.WithDefaults()
	return &s, nil
}

// UpdateSettings reemplaza la configuración completa (solo admin). Omitir la geocerca la elimina.
func (uc *TimeclockUseCase) UpdateSettings(ctx context.Context, in dto.UpdateTimeclockRequest) (*entity.TimeclockSettings, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := entity.ValidateSchedule(in.Schedule); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.Geofence != nil {
		if err := in.Geofence.Validate(); err != nil {
			return nil, fmt.Errorf("%w: geocerca: %v", domain.ErrInvalidInput, err)
		}
	}

	s := entity.TimeclockSettings{
		Version:          entity.TimeclockSettingsVersion,
		Schedule:         in.Schedule,
		ToleranceMinutes: in.ToleranceMinutes,
		Geofence:         in.Geofence,
		UpdatedAt:        uc.now().UTC(),
	}
	s = s.WithDefaults()
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	if err := uc.settings.Put(ctx, repository.SettingsTimeclock, raw); err != nil {
		return nil, err
	}
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicSettings, "settings_updated", s))
	return &s, nil
}

// CheckIn registra una entrada o salida. Con geocerca configurada rechaza ubicaciones
// fuera del radio; en las entradas calcula el retardo contra el horario del día.
func (uc *TimeclockUseCase) CheckIn(ctx context.Context, in dto.CheckInRequest) (*dto.CheckInResponse, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	in.UserName = strings.TrimSpace(in.UserName)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	settings, err := uc.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	c := &entity.CheckIn{
		ID:        entity.NewID(),
		UserID:    in.UserID,
		UserName:  in.UserName,
		Type:      in.Type,
		Service:   strings.TrimSpace(in.Service),
		Lat:       in.Lat,
		Lng:       in.Lng,
		CreatedAt: now,
	}
	if g := settings.Geofence; g != nil {
		inside, distance := geo.Within(g.Lat, g.Lng, g.RadiusMeters, in.Lat, in.Lng)
		if !inside {
			return nil, fmt.Errorf("%w: a %.0f m del punto autorizado (radio %.0f m)", domain.ErrOutsideGeofence, distance, g.RadiusMeters)
		}
		c.DistanceMeters = &distance
	}
	if c.Type == entity.CheckInEntry {
		c.MinutesLate = minutesLate(*settings, now.In(uc.loc))
		c.Late = c.MinutesLate > 0
	}

	if c.Photo, err = uc.media.Store(ctx, ports.MediaPhoto, in.Photo); err != nil {
		return nil, err
	}
	if err := uc.checkIns.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromCheckIn(c)
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicCheckIns, "new_checkin", out))
	return out, nil
}

// ListCheckIns lista registros, más recientes primero. La fecha se compara en UTC.
func (uc *TimeclockUseCase) ListCheckIns(ctx context.Context, f dto.ListFilter) ([]dto.CheckInResponse, error) {
	if err := dto.Validate(f); err != nil {
		return nil, err
	}
	list, err := uc.checkIns.List(ctx, repository.AttendanceFilter{UserID: f.UserID, Date: f.Date})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CheckInResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *dto.FromCheckIn(c))
	}
	return items, nil
}

// minutesLate minutos después de la hora de entrada más tolerancia; 0 si llegó a tiempo
// o el día no tiene turno.
func minutesLate(s entity.TimeclockSettings, local time.Time) int {
	day, ok := s.Day(local.Weekday())
	if !ok || !day.Active {
		return 0
	}
	start, err := entity.ParseClock(day.Start)
	if err != nil {
		return 0
	}
	tolerance := entity.DefaultToleranceMinutes
	if s.ToleranceMinutes != nil {
		tolerance = *s.ToleranceMinutes
	}
	arrival := local.Hour()*60 + local.Minute()
	if arrival <= start+tolerance {
		return 0
	}
	return arrival - start
}
