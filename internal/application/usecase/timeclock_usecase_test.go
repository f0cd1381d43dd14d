package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naisata/servicios-api/internal/application/dto"
	"github.com/naisata/servicios-api/internal/domain"
	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/internal/domain/repository"
	"github.com/naisata/servicios-api/internal/infrastructure/media"
	"github.com/naisata/servicios-api/internal/infrastructure/memory"
)

var cdmx = time.FixedZone("CST", -6*60*60)

func newTimeclock(t *testing.T, now time.Time) (*TimeclockUseCase, *memory.Store, *recorder) {
	t.Helper()
	store := memory.NewStore()
	rec := &recorder{}
	uc := NewTimeclockUseCase(store.Settings, store.CheckIns, media.NewInlineStore(), rec, cdmx)
	uc.now = func() time.Time { return now }
	return uc, store, rec
}

func checkIn(tipo string, lat, lng float64) dto.CheckInRequest {
	return dto.CheckInRequest{UserID: entity.NewID(), UserName: "Ana López", Type: tipo, Lat: lat, Lng: lng}
}

func TestGetSettings_CreaDefaultsUnaVez(t *testing.T) {
	uc, store, _ := newTimeclock(t, time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	s, err := uc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.TimeclockSettingsVersion, s.Version)
	require.NotNil(t, s.ToleranceMinutes)
	assert.Equal(t, 15, *s.ToleranceMinutes)
	assert.Len(t, s.Schedule, 7)
	assert.Nil(t, s.Geofence)

	sunday, ok := s.Day(time.Sunday)
	require.True(t, ok)
	assert.False(t, sunday.Active)
	saturday, _ := s.Day(time.Saturday)
	assert.Equal(t, "14:00", saturday.End)

	raw, err := store.Settings.Get(ctx, repository.SettingsTimeclock)
	require.NoError(t, err)
	assert.NotNil(t, raw, "la primera lectura persiste los valores por defecto")
}

func TestGetSettings_RegistroAnteriorSeCompleta(t *testing.T) {
	uc, store, _ := newTimeclock(t, time.Now())
	ctx := context.Background()

	legacy, _ := json.Marshal(map[string]any{
		"horario": []entity.ScheduleDay{{Weekday: 1, Active: true, Start: "08:00", End: "17:00"}},
	})
	require.NoError(t, store.Settings.Put(ctx, repository.SettingsTimeclock, legacy))

	s, err := uc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.TimeclockSettingsVersion, s.Version)
	require.NotNil(t, s.ToleranceMinutes)
	assert.Equal(t, entity.DefaultToleranceMinutes, *s.ToleranceMinutes)
	require.Len(t, s.Schedule, 1)
	assert.Equal(t, "08:00", s.Schedule[0].Start)
}

func TestUpdateSettings_ReemplazoCompleto(t *testing.T) {
	uc, _, rec := newTimeclock(t, time.Now())
	ctx := context.Background()
	days := []entity.ScheduleDay{{Weekday: 1, Active: true, Start: "09:00", End: "18:00"}}
	fence := &entity.Geofence{Lat: 19.4326, Lng: -99.1332, RadiusMeters: 100}

	s, err := uc.UpdateSettings(ctx, dto.UpdateTimeclockRequest{Schedule: days, Geofence: fence})
	require.NoError(t, err)
	require.NotNil(t, s.Geofence)
	assert.Equal(t, 15, *s.ToleranceMinutes)
	assert.Equal(t, "settings_updated", rec.last().Name)

	tol := 5
	s, err = uc.UpdateSettings(ctx, dto.UpdateTimeclockRequest{Schedule: days, ToleranceMinutes: &tol})
	require.NoError(t, err)
	assert.Nil(t, s.Geofence, "omitir la geocerca la elimina")

	got, err := uc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, got.Geofence)
	assert.Equal(t, 5, *got.ToleranceMinutes)

	_, err = uc.UpdateSettings(ctx, dto.UpdateTimeclockRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateSettings(ctx, dto.UpdateTimeclockRequest{Schedule: []entity.ScheduleDay{
		{Weekday: 1, Active: true, Start: "9am", End: "18:00"},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateSettings(ctx, dto.UpdateTimeclockRequest{Schedule: days, Geofence: &entity.Geofence{Lat: 19, Lng: -99}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "radio cero")
}

func TestCheckIn_Retardo(t *testing.T) {
	cases := []struct {
		name    string
		at      time.Time
		tipo    string
		late    bool
		minutes int
	}{
		// Lunes 2026-10-19; UTC-6 local.
		{"a tiempo", time.Date(2026, 10, 19, 15, 5, 0, 0, time.UTC), entity.CheckInEntry, false, 0},
		{"dentro de tolerancia", time.Date(2026, 10, 19, 15, 15, 0, 0, time.UTC), entity.CheckInEntry, false, 0},
		{"tarde", time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC), entity.CheckInEntry, true, 30},
		{"salida nunca es retardo", time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC), entity.CheckOutExit, false, 0},
		{"domingo sin turno", time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC), entity.CheckInEntry, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, _, _ := newTimeclock(t, tc.at)
			out, err := uc.CheckIn(context.Background(), checkIn(tc.tipo, 19.43, -99.13))
			require.NoError(t, err)
			assert.Equal(t, tc.late, out.Late)
			assert.Equal(t, tc.minutes, out.MinutesLate)
			assert.Nil(t, out.DistanceMeters, "sin geocerca no se calcula distancia")
		})
	}
}

func TestCheckIn_Geocerca(t *testing.T) {
	uc, _, rec := newTimeclock(t, time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC))
	ctx := context.Background()
	_, err := uc.UpdateSettings(ctx, dto.UpdateTimeclockRequest{
		Schedule: entity.DefaultTimeclockSettings(time.Now()).Schedule,
		Geofence: &entity.Geofence{Lat: 19.4326, Lng: -99.1332, RadiusMeters: 100},
	})
	require.NoError(t, err)

	_, err = uc.CheckIn(ctx, checkIn(entity.CheckInEntry, 19.4400, -99.1332))
	assert.ErrorIs(t, err, domain.ErrOutsideGeofence)

	out, err := uc.CheckIn(ctx, checkIn(entity.CheckInEntry, 19.4330, -99.1332))
	require.NoError(t, err)
	require.NotNil(t, out.DistanceMeters)
	assert.Less(t, *out.DistanceMeters, 100.0)
	assert.Equal(t, "new_checkin", rec.last().Name)
}

func TestListCheckIns_Filtros(t *testing.T) {
	uc, _, _ := newTimeclock(t, time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC))
	ctx := context.Background()

	in := checkIn(entity.CheckInEntry, 19.43, -99.13)
	_, err := uc.CheckIn(ctx, in)
	require.NoError(t, err)
	_, err = uc.CheckIn(ctx, checkIn(entity.CheckInEntry, 19.43, -99.13))
	require.NoError(t, err)

	all, err := uc.ListCheckIns(ctx, dto.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := uc.ListCheckIns(ctx, dto.ListFilter{UserID: in.UserID, Date: "2026-10-19"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, in.UserID, mine[0].UserID)

	none, err := uc.ListCheckIns(ctx, dto.ListFilter{Date: "2026-10-20"})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = uc.ListCheckIns(ctx, dto.ListFilter{Date: "19/10/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CheckIn(ctx, dto.CheckInRequest{UserID: in.UserID, UserName: "Ana", Type: "pausa"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
