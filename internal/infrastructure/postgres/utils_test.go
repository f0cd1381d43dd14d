package postgres

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naisata/servicios-api/internal/domain/entity"
)

func TestWhereBuilder_OmiteFiltrosVacios(t *testing.T) {
	var w whereBuilder
	w.eq("user_id", "")
	w.eq("date", "")
	assert.Equal(t, "", w.String())
	assert.Empty(t, w.args)

	w.eq("user_id", "u-1")
	w.eq("date", "2026-03-02")
	assert.Equal(t, " WHERE user_id = $1 AND date = $2", w.String())
	assert.Equal(t, []any{"u-1", "2026-03-02"}, w.args)
}

func TestToJSON_NilEsNULL(t *testing.T) {
	var g *entity.Geofence
	raw, err := toJSON(g)
	require.NoError(t, err)
	assert.Nil(t, raw)

	raw, err = toJSON(nonNilPhotos(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestFromJSON_RoundTripPunch(t *testing.T) {
	var a entity.Attendance
	require.NoError(t, fromJSON([]byte(`{"hora":"2026-03-02T15:04:05Z","lat":19.4,"lng":-99.1}`), &a.Entry))
	require.NotNil(t, a.Entry)
	assert.InDelta(t, 19.4, a.Entry.Lat, 1e-9)

	require.NoError(t, fromJSON(nil, &a.Exit))
	assert.Nil(t, a.Exit)
}

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(err))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}

func TestSchemaIncluyeTablas(t *testing.T) {
	for _, table := range []string{"users", "companies", "sites", "tickets", "settings", "checkins", "schedules", "attendance", "vacations"} {
		assert.True(t, strings.Contains(schemaSQL, "CREATE TABLE IF NOT EXISTS "+table+" ("), table)
	}
}
