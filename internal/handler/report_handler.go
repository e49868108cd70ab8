package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-shop-backoffice/internal/export"
	"go-shop-backoffice/internal/report"
	"go-shop-backoffice/internal/service"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

func (h *ReportHandler) Routes(api, files fiber.Router) {
	api.Post("/reports", h.BuildReport)
	api.Get("/reports/products", h.GetProductOptions)
	files.Get("/download/report.xlsx", h.DownloadReport)
}

// BuildReport answers the filtered sales report. An empty body means no filters.
// POST /api/reports
func (h *ReportHandler) BuildReport(c *fiber.Ctx) error {
	var f report.Filter
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&f); err != nil {
			return badRequest(c, "Invalid JSON")
		}
	}

	rep, err := h.service.Build(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rep)
}

func (h *ReportHandler) GetProductOptions(c *fiber.Ctx) error {
	options, err := h.service.ProductOptions(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"products": options})
}

// DownloadReport takes the same filters as query parameters
// GET /download/report.xlsx
func (h *ReportHandler) DownloadReport(c *fiber.Ctx) error {
	var f report.Filter
	if err := c.QueryParser(&f); err != nil {
		return badRequest(c, "Invalid query")
	}

	data, err := h.service.Workbook(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, "report.xlsx", export.ContentType, data)
}
