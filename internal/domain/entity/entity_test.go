package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidID(t *testing.T) {
	assert.True(t, ValidID(NewID()))
	assert.False(t, ValidID(""))
	assert.False(t, ValidID("1700000000000"), "ids heredados por timestamp no son válidos")
	assert.False(t, ValidID("tmp-123"))
	assert.Nil(t, OptionalID("no-es-un-id"))

	id := NewID()
	require.NotNil(t, OptionalID(id))
	assert.Equal(t, id, IDValue(OptionalID(id)))
	assert.Equal(t, "", IDValue(nil))
}

func TestUserState(t *testing.T) {
	u := &User{}
	assert.Equal(t, AccountRegistered, u.State())

	u.PasswordHash = "$2a$10$hash"
	assert.Equal(t, AccountPasswordSet, u.State())

	u.Signature = "data:image/png;base64,AAAA"
	assert.Equal(t, AccountActive, u.State())
}

func TestScheduleDayValidate(t *testing.T) {
	assert.NoError(t, ScheduleDay{Weekday: 1, Active: true, Start: "09:00", End: "18:00"}.Validate())
	assert.NoError(t, ScheduleDay{Weekday: 0, Active: false}.Validate())
	assert.Error(t, ScheduleDay{Weekday: 7}.Validate())
	assert.Error(t, ScheduleDay{Weekday: 2, Active: true, Start: "9am", End: "18:00"}.Validate())
	assert.Error(t, ScheduleDay{Weekday: 2, Active: true, Start: "18:00", End: "09:00"}.Validate())
}

func TestTimeclockDefaults(t *testing.T) {
	s := DefaultTimeclockSettings(time.Now())
	require.Len(t, s.Schedule, 7)

	sun, ok := s.Day(time.Sunday)
	require.True(t, ok)
	assert.False(t, sun.Active)

	sat, _ := s.Day(time.Saturday)
	assert.Equal(t, "14:00", sat.End)

	legacy := TimeclockSettings{Version: 1}.WithDefaults()
	require.NotNil(t, legacy.ToleranceMinutes)
	assert.Equal(t, DefaultToleranceMinutes, *legacy.ToleranceMinutes)
	assert.Equal(t, TimeclockSettingsVersion, legacy.Version)
	assert.Len(t, legacy.Schedule, 7)
}

func TestTicketDownloadsRemaining(t *testing.T) {
	tk := &Ticket{ClientDownloads: 1}
	assert.Equal(t, 1, tk.DownloadsRemaining(2))
	tk.ClientDownloads = 2
	assert.Equal(t, 0, tk.DownloadsRemaining(2))
	tk.ClientDownloads = 5
	assert.Equal(t, 0, tk.DownloadsRemaining(2))
}
