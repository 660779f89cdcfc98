package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-gst/pkg/logger"
)

// HTTPObserver recibe una observación por petición atendida.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

const maxLoggedBody = 2048

// RequestLogger registra método, ruta, estado, latencia, tamaño y origen de cada petición.
// En POST/PUT/PATCH incluye el cuerpo (recortado).
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler fije el estado antes de registrar
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev = ev.
			Str("method", c.Method()).
			Str("path", c.OriginalURL()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int("bytes", len(c.Response().Body())).
			Str("remote", c.IP())
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch:
			body := c.Body()
			if len(body) > maxLoggedBody {
				body = body[:maxLoggedBody]
			}
			ev = ev.Bytes("body", body)
		}
		ev.Msg("petición")
		return nil
	}
}

// Metrics observa latencia y estado por ruta registrada.
func Metrics(obs HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fErr *fiber.Error
			if errors.As(err, &fErr) {
				status = fErr.Code
			}
		}
		obs.ObserveHTTP(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
