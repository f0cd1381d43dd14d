package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/naisata/servicios-api/internal/application/dto"
	"github.com/naisata/servicios-api/internal/application/usecase"
)

// TimeclockHandler configuración del reloj checador y registros de entrada/salida.
type TimeclockHandler struct {
	uc *usecase.TimeclockUseCase
}

func NewTimeclockHandler(uc *usecase.TimeclockUseCase) *TimeclockHandler {
	return &TimeclockHandler{uc: uc}
}

// GetSettings godoc
// @Summary      Configuración del reloj checador
// @Description  La primera lectura crea los valores por defecto (L-V 09:00-18:00, S 09:00-14:00, tolerancia 15 min).
// @Tags         timeclock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.TimeclockSettings
// @Router       /api/settings/timeclock [get]
func (h *TimeclockHandler) GetSettings(c *fiber.Ctx) error {
	out, err := h.uc.GetSettings(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateSettings godoc
// @Summary      Reemplazar configuración del reloj checador (admin)
// @Tags         timeclock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateTimeclockRequest  true  "horario, toleranciaMinutos, geocerca?"
// @Success      200   {object}  entity.TimeclockSettings
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/timeclock [put]
func (h *TimeclockHandler) UpdateSettings(c *fiber.Ctx) error {
	var in dto.UpdateTimeclockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateSettings(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CheckIn godoc
// @Summary      Registrar entrada o salida
// @Description  Con geocerca configurada, fuera del radio responde 403 OUTSIDE_GEOFENCE.
// @Tags         timeclock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckInRequest  true  "userId, userName, tipo, servicio, lat, lng, foto"
// @Success      201   {object}  dto.CheckInResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/checkin [post]
func (h *TimeclockHandler) CheckIn(c *fiber.Ctx) error {
	var in dto.CheckInRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CheckIn(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCheckIns godoc
// @Summary      Listar registros de entrada/salida
// @Tags         timeclock
// @Security     Bearer
// @Produce      json
// @Param        userId  query  string  false  "Filtrar por usuario"
// @Param        date    query  string  false  "YYYY-MM-DD (UTC)"
// @Success      200     {array}  dto.CheckInResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/checkins [get]
func (h *TimeclockHandler) ListCheckIns(c *fiber.Ctx) error {
	var f dto.ListFilter
	if err := c.QueryParser(&f); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ListCheckIns(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
