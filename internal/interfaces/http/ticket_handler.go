package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/naisata/servicios-api/internal/application/dto"
	"github.com/naisata/servicios-api/internal/application/ticket"
)

// TicketHandler rutas de tickets: las internas requieren token; la liga de firma remota es pública.
type TicketHandler struct {
	uc *ticket.TicketUseCase
}

// NewTicketHandler construye el handler.
func NewTicketHandler(uc *ticket.TicketUseCase) *TicketHandler {
	return &TicketHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ticket
// @Tags         tickets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTicketRequest  true  "Datos del ticket"
// @Success      201   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tickets [post]
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTicketRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBySite godoc
// @Summary      Listar tickets de un sitio
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        siteId  path  string  true  "ID del sitio"
// @Success      200     {array}  dto.TicketResponse
// @Router       /api/tickets/{siteId} [get]
func (h *TicketHandler) ListBySite(c *fiber.Ctx) error {
	out, err := h.uc.ListBySite(c.UserContext(), c.Params("siteId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AppendPhotos godoc
// @Summary      Agregar fotos de evidencia
// @Tags         tickets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del ticket"
// @Param        body  body  dto.AppendPhotosRequest  true  "fotos (data URI)"
// @Success      200   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tickets/{id}/photos [post]
func (h *TicketHandler) AppendPhotos(c *fiber.Ctx) error {
	var in dto.AppendPhotosRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AppendPhotos(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FetchPublic godoc
// @Summary      Ticket para firma remota (público)
// @Tags         public
// @Produce      json
// @Param        id   path  string  true  "ID del ticket"
// @Success      200  {object}  dto.PublicTicketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ticket/{id} [get]
func (h *TicketHandler) FetchPublic(c *fiber.Ctx) error {
	out, err := h.uc.FetchPublic(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Sign godoc
// @Summary      Firma del cliente (público, una sola vez)
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del ticket"
// @Param        body  body  dto.SignTicketRequest  true  "signature (data URI), nombreCliente"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ticket/{id}/sign [post]
func (h *TicketHandler) Sign(c *fiber.Ctx) error {
	var in dto.SignTicketRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.Sign(c.UserContext(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Ticket firmado"})
}

// RequestDownload godoc
// @Summary      Datos para el PDF del cliente (público, máximo 2 descargas)
// @Tags         public
// @Produce      json
// @Param        id   path  string  true  "ID del ticket"
// @Success      200  {object}  dto.TicketDownloadResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ticket/{id}/download-pdf [post]
func (h *TicketHandler) RequestDownload(c *fiber.Ctx) error {
	out, err := h.uc.RequestDownload(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
