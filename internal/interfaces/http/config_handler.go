package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/naisata/servicios-api/internal/application/usecase"
)

// ConfigHandler mapa clave/valor de configuración general de la app.
type ConfigHandler struct {
	uc *usecase.ConfigUseCase
}

func NewConfigHandler(uc *usecase.ConfigUseCase) *ConfigHandler {
	return &ConfigHandler{uc: uc}
}

// Get godoc
// @Summary      Configuración general
// @Tags         config
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/config [get]
func (h *ConfigHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Merge godoc
// @Summary      Fusionar claves de configuración (admin)
// @Tags         config
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  map[string]interface{}  true  "claves a fusionar"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/config [post]
func (h *ConfigHandler) Merge(c *fiber.Ctx) error {
	var in map[string]any
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Merge(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
