package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/application/inventory"
	"github.com/jhoicas/facturacion-gst/internal/infrastructure/export"
	"github.com/jhoicas/facturacion-gst/internal/infrastructure/memory"
	"github.com/jhoicas/facturacion-gst/internal/infrastructure/metrics"
	"github.com/jhoicas/facturacion-gst/internal/infrastructure/pdf"
	httpapi "github.com/jhoicas/facturacion-gst/internal/interfaces/http"
	"github.com/jhoicas/facturacion-gst/pkg/logger"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	m := metrics.New(false)

	app := fiber.New()
	app.Use(httpapi.RequestLogger(log))
	app.Use(httpapi.Metrics(m))
	httpapi.Router(app, httpapi.RouterDeps{
		ClientUC:   billing.NewClientUseCase(store.Clients()),
		ItemUC:     inventory.NewItemUseCase(store.Items(), log),
		InvoiceUC:  billing.NewInvoiceUseCase(store, store.Invoices(), store.Clients(), store.Items(), log),
		BusinessUC: billing.NewBusinessUseCase(store.Business()),
		PDFUC: billing.NewPDFUseCase(store.Invoices(), store.Clients(), store.Items(), store.Business(),
			pdf.NewGofpdfRenderer(), nil, m, billing.PDFOptions{MaxConcurrent: 2, CacheTTL: time.Minute}, log),
		ReportUC: billing.NewReportUseCase(store.Invoices(), store.Clients(), store.Business(),
			pdf.NewMarotoRegisterRenderer(), export.NewExcelRegisterExporter()),
		MetricsHandler: m.Handler(),
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any, *bytes.Buffer) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw := new(bytes.Buffer)
	_, err = raw.ReadFrom(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw.Bytes(), &out))
	}
	return resp.StatusCode, out, raw
}

const clientBody = `{"name":"Sharma Electricals","email":"sharma@example.in","phone":"9876543210",
	"gstin":"07ABCDE1234F1Z5","address":{"street":"22 Chandni Chowk","city":"Delhi","state":"Delhi","pincode":"110006"}}`

const itemBody = `{"name":"Copper Wire 1.5mm","hsn_code":"8544","unit":"Mtr","price":"500","tax_rate":"18","stock":100}`

const businessBody = `{"name":"Gupta Traders","address":{"street":"4 Lajpat Nagar","city":"New Delhi","state":"Delhi","pincode":"110024"},
	"phone":"011-2345678","email":"billing@gupta.in","gstin":"07AAACG1234K1Z2","pan":"AAACG1234K",
	"bank_details":{"account_name":"Gupta Traders","account_number":"001122334455","bank_name":"State Bank of India","ifsc_code":"SBIN0000691","branch":"Lajpat Nagar"}}`

func seed(t *testing.T, app *fiber.App) (clientID, itemID string) {
	t.Helper()
	status, body, _ := do(t, app, fiber.MethodPost, "/api/clients", clientBody)
	require.Equal(t, fiber.StatusCreated, status)
	clientID = body["id"].(string)

	status, body, _ = do(t, app, fiber.MethodPost, "/api/inventory", itemBody)
	require.Equal(t, fiber.StatusCreated, status)
	itemID = body["id"].(string)
	return clientID, itemID
}

func invoiceBody(clientID, itemID, total string) string {
	return `{"client_id":"` + clientID + `","sale_type":"Central - 18%","items":[{"item_id":"` + itemID +
		`","quantity":"2","price":"500"}],"subtotal":"1000","total_tax":"180","total":"` + total + `"}`
}

// ──────────────────────────────────────────────────────────────────────────────
// Clients
// ──────────────────────────────────────────────────────────────────────────────

func TestClients_ValidacionDeBody(t *testing.T) {
	app := newApp(t)

	status, body, _ := do(t, app, fiber.MethodPost, "/api/clients", `{"name":"Sin correo"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
	details := body["details"].(map[string]any)
	assert.Equal(t, "required", details["Email"])

	status, body, _ = do(t, app, fiber.MethodPost, "/api/clients", `{no es json`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", body["code"])
}

func TestClients_DuplicadoYNoEncontrado(t *testing.T) {
	app := newApp(t)
	seed(t, app)

	status, body, _ := do(t, app, fiber.MethodPost, "/api/clients", clientBody)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", body["code"])

	status, body, _ = do(t, app, fiber.MethodGet, "/api/clients/no-existe", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventory
// ──────────────────────────────────────────────────────────────────────────────

func TestInventory_AjusteDeStock(t *testing.T) {
	app := newApp(t)
	_, itemID := seed(t, app)

	status, body, _ := do(t, app, fiber.MethodPatch, "/api/inventory/"+itemID+"/stock", `{"quantity":-150}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	details := body["details"].(map[string]any)
	assert.EqualValues(t, 100, details["current_stock"])
	assert.EqualValues(t, -50, details["resulting_stock"])

	status, body, _ = do(t, app, fiber.MethodPatch, "/api/inventory/"+itemID+"/stock", `{"quantity":-40}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 60, body["stock"])

	status, _, _ = do(t, app, fiber.MethodPatch, "/api/inventory/"+itemID+"/stock", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invoices
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoices_CrearYObtener(t *testing.T) {
	app := newApp(t)
	clientID, itemID := seed(t, app)

	status, body, _ := do(t, app, fiber.MethodPost, "/api/invoices", invoiceBody(clientID, itemID, "1180"))
	require.Equal(t, fiber.StatusCreated, status)
	number := body["invoice_number"].(string)
	assert.True(t, strings.HasPrefix(number, "INV"))
	assert.True(t, strings.HasSuffix(number, "0001"))
	assert.Equal(t, "18", body["tax_rate"])

	id := body["id"].(string)
	status, body, _ = do(t, app, fiber.MethodGet, "/api/invoices/"+id, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, number, body["invoice_number"])
	assert.NotNil(t, body["client"])

	status, body, _ = do(t, app, fiber.MethodGet, "/api/invoices", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["items"], 1)
}

func TestInvoices_TotalesNoCoinciden(t *testing.T) {
	app := newApp(t)
	clientID, itemID := seed(t, app)

	status, body, _ := do(t, app, fiber.MethodPost, "/api/invoices", invoiceBody(clientID, itemID, "1200"))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	status, body, _ = do(t, app, fiber.MethodGet, "/api/invoices", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body["items"])
}

func TestInvoices_PDF(t *testing.T) {
	app := newApp(t)
	clientID, itemID := seed(t, app)

	_, body, _ := do(t, app, fiber.MethodPost, "/api/invoices", invoiceBody(clientID, itemID, "1180"))
	id := body["id"].(string)
	number := body["invoice_number"].(string)

	// sin perfil de empresa no hay documento
	status, body, _ := do(t, app, fiber.MethodGet, "/api/invoices/"+id+"/pdf", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])

	status, _, _ = do(t, app, fiber.MethodPost, "/api/business", businessBody)
	require.Equal(t, fiber.StatusOK, status)

	req := httptest.NewRequest(fiber.MethodGet, "/api/invoices/"+id+"/pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "attachment; filename=invoice-"+number+".pdf", resp.Header.Get(fiber.HeaderContentDisposition))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestInvoices_Libros(t *testing.T) {
	app := newApp(t)
	clientID, itemID := seed(t, app)
	do(t, app, fiber.MethodPost, "/api/business", businessBody)
	do(t, app, fiber.MethodPost, "/api/invoices", invoiceBody(clientID, itemID, "1180"))

	status, _, raw := do(t, app, fiber.MethodGet, "/api/invoices/register.pdf", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, bytes.HasPrefix(raw.Bytes(), []byte("%PDF-")))

	status, _, raw = do(t, app, fiber.MethodGet, "/api/invoices/register.xlsx", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, bytes.HasPrefix(raw.Bytes(), []byte("PK")), "xlsx es un zip")
}

// ──────────────────────────────────────────────────────────────────────────────
// Business / metrics
// ──────────────────────────────────────────────────────────────────────────────

func TestBusiness_UpsertYLogo(t *testing.T) {
	app := newApp(t)

	status, _, _ := do(t, app, fiber.MethodGet, "/api/business", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, first, _ := do(t, app, fiber.MethodPost, "/api/business", businessBody)
	require.Equal(t, fiber.StatusOK, status)
	status, second, _ := do(t, app, fiber.MethodPost, "/api/business", businessBody)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, first["id"], second["id"])

	status, _, _ = do(t, app, fiber.MethodPatch, "/api/business/logo", `{"logo":""}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestMetrics_Expuestas(t *testing.T) {
	app := newApp(t)
	do(t, app, fiber.MethodGet, "/api/clients", "")

	status, _, raw := do(t, app, fiber.MethodGet, "/metrics", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, raw.String(), "facturacion_http_requests_total")
}
