package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-gst/internal/application/dto"
	"github.com/jhoicas/facturacion-gst/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// parseBody decodifica el JSON y aplica las reglas `validate` del DTO.
// Si falla ya respondió 400 y devuelve false.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(validationResponse(err))
	}
	return true, nil
}

// validationResponse traduce los errores de validator a {campo: regla}.
func validationResponse(err error) dto.ErrorResponse {
	resp := dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"}
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		resp.Details = make(map[string]any, len(vErrs))
		for _, fe := range vErrs {
			resp.Details[fieldPath(fe.Namespace())] = fe.Tag()
		}
	}
	return resp
}

// fieldPath quita el nombre del struct raíz: "CreateInvoiceRequest.Items[0].ItemID" -> "Items[0].ItemID".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// respondError mapea errores de dominio a HTTP.
func respondError(c *fiber.Ctx, err error) error {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		details := map[string]any{}
		for k, v := range vErr.Details {
			details[k] = v
		}
		if vErr.Field != "" {
			details["field"] = vErr.Field
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: vErr.Message, Details: details})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrRender):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "RENDER", Message: "error generando el documento"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 50), Offset: c.QueryInt("offset", 0)}
	if p.Limit > 500 {
		p.Limit = 500
	}
	p.DefaultPage()
	return p
}

// sendAttachment envía un documento ya completo como descarga.
func sendAttachment(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+filename)
	return c.Send(data)
}
