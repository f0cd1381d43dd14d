package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naisata/servicios-api/internal/domain"
	"github.com/naisata/servicios-api/internal/domain/entity"
)

func TestValidate_CamposRequeridosUsanNombreJSON(t *testing.T) {
	err := Validate(CreateTicketRequest{Folio: "F-1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "nombreTrabajo es requerido")
	assert.Contains(t, err.Error(), "siteId es requerido")
}

func TestValidate_Oneof(t *testing.T) {
	err := Validate(AssignRoleRequest{Role: "root"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rol debe ser uno de")

	assert.NoError(t, Validate(AssignRoleRequest{Role: "admin"}))
}

func TestValidate_FechaConFormato(t *testing.T) {
	err := Validate(CreateVacationRequest{StartDate: "01/02/2026", EndDate: "2026-02-03"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fechaInicio debe tener formato")
}

func TestFromUser_NoExponeSecretos(t *testing.T) {
	assert.Nil(t, FromUser(nil))

	u := &entity.User{ID: "u1", Email: "a@naisata.com", PasswordHash: "$2a$10$secreto", Signature: "data:image/png;base64,QUJD"}
	raw, err := json.Marshal(FromUser(u))
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "secreto")
	assert.NotContains(t, string(raw), "QUJD")
	assert.Contains(t, string(raw), `"tienePassword":true`)
	assert.Contains(t, string(raw), `"tieneFirma":true`)
	assert.Contains(t, string(raw), `"horario":[]`)
}
