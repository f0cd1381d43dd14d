package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/naisata/servicios-api/internal/application/dto"
	"github.com/naisata/servicios-api/internal/application/usecase"
)

// VacationHandler solicitudes de vacaciones.
type VacationHandler struct {
	uc *usecase.VacationUseCase
}

func NewVacationHandler(uc *usecase.VacationUseCase) *VacationHandler {
	return &VacationHandler{uc: uc}
}

// List godoc
// @Summary      Listar solicitudes de vacaciones
// @Tags         vacations
// @Security     Bearer
// @Produce      json
// @Param        userId  query  string  false  "Filtrar por usuario"
// @Param        estado  query  string  false  "pendiente | aprobada | rechazada"
// @Success      200     {array}  dto.VacationResponse
// @Router       /api/vacations [get]
func (h *VacationHandler) List(c *fiber.Ctx) error {
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
// @Summary      Solicitar vacaciones
// @Description  Sin userId se usa el usuario del token.
// @Tags         vacations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVacationRequest  true  "fechaInicio, fechaFin, motivo"
// @Success      201   {object}  dto.VacationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/vacations [post]
func (h *VacationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVacationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.UserID == "" {
		in.UserID = GetUserID(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Resolver solicitud de vacaciones (admin)
// @Tags         vacations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID de la solicitud"
// @Param        body  body  dto.UpdateVacationStatusRequest  true  "estado"
// @Success      200   {object}  dto.VacationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vacations/{id}/status [put]
func (h *VacationHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateVacationStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
