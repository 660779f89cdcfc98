package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/application/dto"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// InvoiceHandler maneja las peticiones HTTP de facturación.
type InvoiceHandler struct {
	uc      *billing.InvoiceUseCase
	pdf     *billing.PDFUseCase
	reports *billing.ReportUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase, reports *billing.ReportUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf, reports: reports}
}

// Create godoc
// @Summary      Crear factura
// @Description  Asigna número (INV+YY+MM+secuencia), fuerza la tasa según sale_type y valida los totales declarados.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Cliente, líneas y totales declarados"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Submit(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas (más recientes primero)
// @Tags         invoices
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.InvoiceListResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura con cliente y artículos
// @Tags         invoices
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar factura (parcial)
// @Description  Revalida totales y transición de estado; el número nunca se reasigna.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la factura"
// @Param        body  body  dto.UpdateInvoiceRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [patch]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura
// @Tags         invoices
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "factura eliminada"})
}

// DownloadPDF godoc
// @Summary      Descargar factura en PDF (A4, una página)
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.pdf.DownloadInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, contentTypePDF, filename, data)
}

// RegisterPDF godoc
// @Summary      Libro de facturas en PDF
// @Tags         invoices
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/invoices/register.pdf [get]
func (h *InvoiceHandler) RegisterPDF(c *fiber.Ctx) error {
	data, filename, err := h.reports.RegisterPDF(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, contentTypePDF, filename, data)
}

// RegisterXLSX godoc
// @Summary      Libro de facturas en Excel
// @Tags         invoices
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Router       /api/invoices/register.xlsx [get]
func (h *InvoiceHandler) RegisterXLSX(c *fiber.Ctx) error {
	data, filename, err := h.reports.RegisterXLSX(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, contentTypeXLSX, filename, data)
}
