package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClientUC   *billing.ClientUseCase
	ItemUC     *inventory.ItemUseCase
	InvoiceUC  *billing.InvoiceUseCase
	PDFUC      *billing.PDFUseCase
	ReportUC   *billing.ReportUseCase
	BusinessUC *billing.BusinessUseCase
	// MetricsHandler opcional: expone /metrics.
	MetricsHandler http.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Clients
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Patch("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Inventory
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ItemUC)
	inv.Get("/", inventoryHandler.List)
	inv.Post("/", inventoryHandler.Create)
	inv.Get("/:id", inventoryHandler.GetByID)
	inv.Patch("/:id", inventoryHandler.Update)
	inv.Patch("/:id/stock", inventoryHandler.AdjustStock)
	inv.Delete("/:id", inventoryHandler.Delete)

	// Invoices (los libros se registran antes de /:id)
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC, deps.ReportUC)
	invoices.Get("/register.pdf", invoiceHandler.RegisterPDF)
	invoices.Get("/register.xlsx", invoiceHandler.RegisterXLSX)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Business profile (singleton)
	business := api.Group("/business")
	businessHandler := NewBusinessHandler(deps.BusinessUC)
	business.Get("/", businessHandler.Get)
	business.Post("/", businessHandler.Upsert)
	business.Patch("/logo", businessHandler.UpdateLogo)
}
