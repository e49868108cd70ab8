package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/service"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

func (h *SaleHandler) Routes(api, files fiber.Router) {
	api.Post("/add_sale", h.AddSale)
	api.Get("/sales", h.GetSales)
	files.Get("/download/sales", h.DownloadSales)
}

// AddSale records a sale and answers with the most recent sales
// POST /api/add_sale
func (h *SaleHandler) AddSale(c *fiber.Ctx) error {
	var in model.SaleInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}

	recent, err := h.service.Record(c.UserContext(), in)
	if errors.Is(err, service.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "last_sales": recent})
}

func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"sales": sales})
}

func (h *SaleHandler) DownloadSales(c *fiber.Ctx) error {
	data, err := h.service.Export(c.UserContext())
	return sendCSV(c, "sales.csv", data, err)
}
