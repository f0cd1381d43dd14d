package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/naisata/servicios-api/internal/application/dto"
	"github.com/naisata/servicios-api/internal/application/usecase"
)

// ScheduleHandler horarios globales con nombre.
type ScheduleHandler struct {
	uc *usecase.ScheduleUseCase
}

func NewScheduleHandler(uc *usecase.ScheduleUseCase) *ScheduleHandler {
	return &ScheduleHandler{uc: uc}
}

// List godoc
// @Summary      Listar horarios
// @Tags         schedules
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ScheduleResponse
// @Router       /api/schedules [get]
func (h *ScheduleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener horario
// @Tags         schedules
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del horario"
// @Success      200  {object}  dto.ScheduleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/schedules/{id} [get]
func (h *ScheduleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear horario (admin)
// @Tags         schedules
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScheduleRequest  true  "nombre, dias, geocerca?"
// @Success      201   {object}  dto.ScheduleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/schedules [post]
func (h *ScheduleHandler) Create(c *fiber.Ctx) error {
	var in dto.ScheduleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar horario (admin)
// @Tags         schedules
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del horario"
// @Param        body  body  dto.ScheduleRequest  true  "nombre, dias, geocerca?"
// @Success      200   {object}  dto.ScheduleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/schedules/{id} [post]
func (h *ScheduleHandler) Update(c *fiber.Ctx) error {
	var in dto.ScheduleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar horario (admin)
// @Tags         schedules
// @Security     Bearer
// @Param        id   path  string  true  "ID del horario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
