package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/application/dto"
)

// BusinessHandler maneja el perfil único de la empresa emisora.
type BusinessHandler struct {
	uc *billing.BusinessUseCase
}

// NewBusinessHandler construye el handler.
func NewBusinessHandler(uc *billing.BusinessUseCase) *BusinessHandler {
	return &BusinessHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener perfil de empresa
// @Tags         business
// @Produce      json
// @Success      200  {object}  dto.BusinessProfileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/business [get]
func (h *BusinessHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear o actualizar perfil de empresa
// @Description  Si ya existe un perfil se actualiza en el lugar (misma identidad).
// @Tags         business
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BusinessProfileRequest  true  "Datos de la empresa"
// @Success      200   {object}  dto.BusinessProfileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/business [post]
func (h *BusinessHandler) Upsert(c *fiber.Ctx) error {
	var in dto.BusinessProfileRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Upsert(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateLogo godoc
// @Summary      Reemplazar logo (base64, admite data URI)
// @Tags         business
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateLogoRequest  true  "Logo"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/business/logo [patch]
func (h *BusinessHandler) UpdateLogo(c *fiber.Ctx) error {
	var in dto.UpdateLogoRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if err := h.uc.UpdateLogo(c.Context(), in.Logo); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "logo actualizado"})
}
