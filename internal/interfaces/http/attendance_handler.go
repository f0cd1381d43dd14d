package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/naisata/servicios-api/internal/application/dto"
	"github.com/naisata/servicios-api/internal/application/usecase"
)

// AttendanceHandler registros pareados de asistencia y su sincronización offline.
type AttendanceHandler struct {
	uc *usecase.AttendanceUseCase
}

func NewAttendanceHandler(uc *usecase.AttendanceUseCase) *AttendanceHandler {
	return &AttendanceHandler{uc: uc}
}

// List godoc
// @Summary      Listar asistencias
// @Tags         attendance
// @Security     Bearer
// @Produce      json
// @Param        userId  query  string  false  "Filtrar por usuario"
// @Param        date    query  string  false  "YYYY-MM-DD"
// @Success      200     {array}  dto.AttendanceResponse
// @Router       /api/attendance [get]
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	var f dto.ListFilter
	if err := c.QueryParser(&f); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar asistencia
// @Tags         attendance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AttendanceRequest  true  "userId, fecha, entrada?, salida?"
// @Success      201   {object}  dto.AttendanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/attendance [post]
func (h *AttendanceHandler) Create(c *fiber.Ctx) error {
	var in dto.AttendanceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Sync godoc
// @Summary      Sincronizar asistencias capturadas sin conexión
// @Description  Ids temporales del cliente se insertan como nuevos; ids del servidor se fusionan. Devuelve el mapa clientId -> serverId.
// @Tags         attendance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AttendanceSyncRequest  true  "registros"
// @Success      200   {object}  dto.AttendanceSyncResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/attendance/sync [post]
func (h *AttendanceHandler) Sync(c *fiber.Ctx) error {
	var in dto.AttendanceSyncRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Sync(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
