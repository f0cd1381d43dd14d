package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naisata/servicios-api/internal/application/dto"
	"github.com/naisata/servicios-api/internal/domain"
	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/internal/infrastructure/media"
	"github.com/naisata/servicios-api/internal/infrastructure/memory"
)

func TestAttendanceUseCase_Sync(t *testing.T) {
	store := memory.NewStore()
	rec := &recorder{}
	uc := NewAttendanceUseCase(store.Attendance, media.NewInlineStore(), rec)
	ctx := context.Background()
	userID := entity.NewID()
	entrada := &entity.Punch{Time: time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC), Lat: 19.43, Lng: -99.13}

	saved, err := uc.Create(ctx, dto.AttendanceRequest{UserID: userID, UserName: "Ana", Date: "2026-10-19", Service: "Planta", Entry: entrada})
	require.NoError(t, err)
	assert.Equal(t, "attendance_saved", rec.last().Name)

	salida := &entity.Punch{Time: time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC), Lat: 19.43, Lng: -99.13}
	res, err := uc.Sync(ctx, dto.AttendanceSyncRequest{Records: []dto.AttendanceRequest{
		{ID: "tmp-1", UserID: userID, Date: "2026-10-20", Entry: entrada},
		{ID: saved.ID, UserID: userID, Date: "2026-10-19", Exit: salida},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Merged)
	assert.Equal(t, saved.ID, res.IDs[saved.ID])
	newID := res.IDs["tmp-1"]
	assert.True(t, entity.ValidID(newID), "un id temporal recibe un id del servidor")
	assert.Equal(t, "attendance_synced", rec.last().Name)

	merged, err := store.Attendance.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Planta", merged.Service, "los campos vacíos no sobrescriben")
	assert.Equal(t, "Ana", merged.UserName)
	require.NotNil(t, merged.Entry)
	require.NotNil(t, merged.Exit)

	list, err := uc.List(ctx, dto.ListFilter{UserID: userID, Date: "2026-10-20"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, newID, list[0].ID)
}

func TestAttendanceUseCase_Validaciones(t *testing.T) {
	store := memory.NewStore()
	uc := NewAttendanceUseCase(store.Attendance, media.NewInlineStore(), &recorder{})
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.AttendanceRequest{UserID: entity.NewID(), Date: "19-10-2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.AttendanceRequest{UserID: entity.NewID(), Date: "2026-10-19", Entry: &entity.Punch{}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "marca sin hora")
	_, err = uc.Sync(ctx, dto.AttendanceSyncRequest{Records: []dto.AttendanceRequest{{ID: "tmp", Date: "2026-10-19"}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Un id del servidor que no existe se inserta conservando el id.
	lost := entity.NewID()
	res, err := uc.Sync(ctx, dto.AttendanceSyncRequest{Records: []dto.AttendanceRequest{{ID: lost, UserID: entity.NewID(), Date: "2026-10-19"}}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, lost, res.IDs[lost])
}

func TestVacationUseCase(t *testing.T) {
	store := memory.NewStore()
	rec := &recorder{}
	uc := NewVacationUseCase(store.Vacations, rec)
	ctx := context.Background()
	userID := entity.NewID()

	_, err := uc.Create(ctx, dto.CreateVacationRequest{UserID: userID, StartDate: "2026-12-24", EndDate: "2026-12-20"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateVacationRequest{StartDate: "2026-12-20", EndDate: "2026-12-24"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	v, err := uc.Create(ctx, dto.CreateVacationRequest{UserID: userID, UserName: "Ana", StartDate: "2026-12-20", EndDate: "2026-12-20", Reason: "Fiestas"})
	require.NoError(t, err)
	assert.Equal(t, entity.VacationPending, v.Status)
	assert.Equal(t, "2026-12-20", v.StartDate)

	adminID := entity.NewID()
	up, err := uc.UpdateStatus(ctx, v.ID, dto.UpdateVacationStatusRequest{Status: entity.VacationApproved}, adminID)
	require.NoError(t, err)
	assert.Equal(t, entity.VacationApproved, up.Status)
	assert.Equal(t, adminID, up.ReviewedBy)
	assert.Equal(t, "vacation_updated", rec.last().Name)

	up, err = uc.UpdateStatus(ctx, v.ID, dto.UpdateVacationStatusRequest{Status: entity.VacationRejected}, adminID)
	require.NoError(t, err)
	assert.Equal(t, entity.VacationRejected, up.Status, "un admin puede cambiar la decisión")

	_, err = uc.UpdateStatus(ctx, v.ID, dto.UpdateVacationStatusRequest{Status: "cancelada"}, adminID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateStatus(ctx, "nope", dto.UpdateVacationStatusRequest{Status: entity.VacationApproved}, adminID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, dto.ListFilter{Status: entity.VacationRejected})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = uc.List(ctx, dto.ListFilter{Status: entity.VacationPending})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestScheduleUseCase(t *testing.T) {
	store := memory.NewStore()
	rec := &recorder{}
	uc := NewScheduleUseCase(store.Schedules, rec)
	ctx := context.Background()
	days := []entity.ScheduleDay{{Weekday: 1, Active: true, Start: "08:00", End: "16:00"}}

	s, err := uc.Create(ctx, dto.ScheduleRequest{Name: "Matutino", Days: days})
	require.NoError(t, err)
	assert.Nil(t, s.Geofence)

	fence := &entity.Geofence{Lat: 25.67, Lng: -100.31, RadiusMeters: 250}
	s, err = uc.Update(ctx, s.ID, dto.ScheduleRequest{Name: "Matutino MTY", Days: days, Geofence: fence})
	require.NoError(t, err)
	assert.Equal(t, "Matutino MTY", s.Name)
	require.NotNil(t, s.Geofence)
	assert.Equal(t, "schedule_saved", rec.last().Name)

	_, err = uc.Create(ctx, dto.ScheduleRequest{Name: "Doble", Days: append(days, days[0])})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	require.NoError(t, uc.Delete(ctx, s.ID))
	assert.ErrorIs(t, uc.Delete(ctx, s.ID), domain.ErrNotFound)
	_, err = uc.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestConfigUseCase_Merge(t *testing.T) {
	store := memory.NewStore()
	rec := &recorder{}
	uc := NewConfigUseCase(store.Settings, rec)
	ctx := context.Background()

	values, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, values)

	_, err = uc.Merge(ctx, map[string]any{"empresa": "Naisata", "maxFotos": float64(10)})
	require.NoError(t, err)
	values, err = uc.Merge(ctx, map[string]any{"maxFotos": float64(15)})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"empresa": "Naisata", "maxFotos": float64(15)}, values)
	assert.Equal(t, "config_updated", rec.last().Name)

	values, err = uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Naisata", values["empresa"])

	_, err = uc.Merge(ctx, map[string]any{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
