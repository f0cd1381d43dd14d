package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/naisata/servicios-api/internal/application/dto"
	"github.com/naisata/servicios-api/internal/application/usecase"
)

// SiteHandler maneja las peticiones HTTP para sitios de trabajo.
type SiteHandler struct {
	uc *usecase.SiteUseCase
}

// NewSiteHandler construye el handler.
func NewSiteHandler(uc *usecase.SiteUseCase) *SiteHandler {
	return &SiteHandler{uc: uc}
}

// Create godoc
// @Summary      Crear sitio
// @Tags         sites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSiteRequest  true  "Datos del sitio"
// @Success      201   {object}  dto.SiteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sites [post]
func (h *SiteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSiteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener sitio por ID
// @Tags         sites
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del sitio"
// @Success      200  {object}  dto.SiteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sites/{id} [get]
func (h *SiteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar sitios
// @Tags         sites
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SiteResponse
// @Router       /api/sites [get]
func (h *SiteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar sitio
// @Tags         sites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del sitio"
// @Param        body  body  dto.UpdateSiteRequest  true  "Campos a cambiar; companyId vacío desvincula"
// @Success      200   {object}  dto.SiteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sites/{id} [put]
func (h *SiteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSiteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateLogo godoc
// @Summary      Reemplazar logo del sitio
// @Tags         sites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del sitio"
// @Param        body  body  dto.UpdateLogoRequest  true  "logo (data URI)"
// @Success      200   {object}  dto.SiteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sites/{id}/logo [put]
func (h *SiteHandler) UpdateLogo(c *fiber.Ctx) error {
	var in dto.UpdateLogoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateLogo(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar sitio
// @Description  Borra también todos los tickets del sitio.
// @Tags         sites
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del sitio"
// @Success      200  {object}  dto.DeleteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sites/{id} [delete]
func (h *SiteHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
