package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-gst/internal/application/dto"
	"github.com/jhoicas/facturacion-gst/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de artículos de inventario.
type InventoryHandler struct {
	uc *inventory.ItemUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.ItemUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear artículo
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar artículos
// @Tags         inventory
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.InventoryItemResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo (parcial)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.UpdateInventoryItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [patch]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryItemRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajustar stock (delta con signo)
// @Description  Rechaza el ajuste si el stock resultante sería negativo; el artículo no cambia.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.AdjustStockRequest  true  "quantity: delta positivo o negativo"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/stock [patch]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.AdjustStock(c.Context(), c.Params("id"), *in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar artículo
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "artículo eliminado"})
}
