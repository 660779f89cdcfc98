package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/application/inventory"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
	"github.com/jhoicas/facturacion-gst/internal/infrastructure/cache"
	"github.com/jhoicas/facturacion-gst/internal/infrastructure/export"
	"github.com/jhoicas/facturacion-gst/internal/infrastructure/memory"
	"github.com/jhoicas/facturacion-gst/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/facturacion-gst/internal/infrastructure/pdf"
	"github.com/jhoicas/facturacion-gst/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/facturacion-gst/internal/interfaces/http"
	"github.com/jhoicas/facturacion-gst/pkg/config"
	"github.com/jhoicas/facturacion-gst/pkg/logger"
)

// storage repositorios del backend elegido.
type storage struct {
	tx       billing.InvoiceTxRunner
	invoices repository.InvoiceRepository
	clients  repository.ClientRepository
	items    repository.InventoryItemRepository
	business repository.BusinessProfileRepository
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store := openStorage(ctx, cfg, log)
	defer store.close()

	// Caché de PDFs: opcional, si Redis no responde se sigue sin caché
	var docCache billing.DocumentCache
	if cfg.Redis.Enabled() {
		rc, err := cache.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, caché de PDF desactivada")
		} else {
			defer rc.Close()
			docCache = rc
		}
	}

	m := metrics.New(true)

	clientUC := billing.NewClientUseCase(store.clients)
	itemUC := inventory.NewItemUseCase(store.items, log)
	invoiceUC := billing.NewInvoiceUseCase(store.tx, store.invoices, store.clients, store.items, log)
	businessUC := billing.NewBusinessUseCase(store.business)
	pdfUC := billing.NewPDFUseCase(
		store.invoices, store.clients, store.items, store.business,
		infrapdf.NewGofpdfRenderer(), docCache, m,
		billing.PDFOptions{MaxConcurrent: cfg.PDF.MaxConcurrent, CacheTTL: cfg.PDF.CacheTTL},
		log,
	)
	reportUC := billing.NewReportUseCase(
		store.invoices, store.clients, store.business,
		infrapdf.NewMarotoRegisterRenderer(), export.NewExcelRegisterExporter(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024, // logos en base64
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(httpRouter.Metrics(m))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.DocsPath != "" {
		if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.DocsPath,
				Path:     "docs",
				Title:    "Facturación GST API",
			}))
		} else {
			log.Warn().Str("path", cfg.HTTP.DocsPath).Msg("swagger.json no encontrado, /docs desactivado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClientUC:       clientUC,
		ItemUC:         itemUC,
		InvoiceUC:      invoiceUC,
		PDFUC:          pdfUC,
		ReportUC:       reportUC,
		BusinessUC:     businessUC,
		MetricsHandler: m.Handler(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) storage {
	if cfg.Storage.Driver == config.StorageMemory {
		s := memory.NewStore()
		return storage{
			tx:       s,
			invoices: s.Invoices(),
			clients:  s.Clients(),
			items:    s.Items(),
			business: s.Business(),
			close:    func() {},
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	if cfg.Storage.MigrationsRun {
		if err := postgres.NewMigrator(pool, log).Run(ctx); err != nil {
			pool.Close()
			log.Fatal().Err(err).Msg("migraciones")
		}
	}
	return storage{
		tx:       postgres.NewTxRunner(pool),
		invoices: postgres.NewInvoiceRepository(pool),
		clients:  postgres.NewClientRepository(pool),
		items:    postgres.NewInventoryItemRepository(pool),
		business: postgres.NewBusinessProfileRepository(pool),
		close:    pool.Close,
	}
}
