package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"go-shop-backoffice/internal/report"
	"go-shop-backoffice/internal/service"
	"go-shop-backoffice/pkg/logger"
)

func init() {
	// Money goes out as JSON numbers ({"amount": 30}), not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true

	// Teach the form/query decoder about money fields. A blank value is zero
	// (or "not sent" for partial updates); anything else must parse.
	fiber.SetParserDecoder(fiber.ParserConfig{
		IgnoreUnknownKeys: true,
		ParserType: []fiber.ParserType{
			{Customtype: decimal.Decimal{}, Converter: decodeDecimal},
			{Customtype: decimal.NullDecimal{}, Converter: decodeNullDecimal},
		},
	})
}

func decodeDecimal(raw string) reflect.Value {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return reflect.ValueOf(decimal.Zero)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return reflect.Value{}
	}
	return reflect.ValueOf(d)
}

func decodeNullDecimal(raw string) reflect.Value {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return reflect.ValueOf(decimal.NullDecimal{})
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return reflect.Value{}
	}
	return reflect.ValueOf(decimal.NewNullDecimal(d))
}

// respondError maps service errors to a status and the {"error": ...} body.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal Server Error"

	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrCredentialsRequired):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNotFound):
		status, message = fiber.StatusNotFound, "Record not found"
	case errors.Is(err, service.ErrProductNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status, message = fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrMachineNotAuthorized):
		status, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrSubscriptionExpired):
		status, message = fiber.StatusPaymentRequired, err.Error()
	case errors.Is(err, report.ErrStoreUnavailable):
		status, message = fiber.StatusServiceUnavailable, "Sales data is temporarily unavailable"
	}

	if status >= fiber.StatusInternalServerError {
		logger.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func success(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}

// importUpload feeds the multipart "file" field to an import function.
func importUpload(c *fiber.Ctx, run func(ctx context.Context, src io.Reader) (int, error)) error {
	header, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "No file uploaded")
	}
	f, err := header.Open()
	if err != nil {
		return badRequest(c, "Unreadable upload")
	}
	defer f.Close()

	n, err := run(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "imported": n})
}

func sendAttachment(c *fiber.Ctx, filename, contentType string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

func sendCSV(c *fiber.Ctx, filename string, data []byte, err error) error {
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, filename, "text/csv", data)
}
