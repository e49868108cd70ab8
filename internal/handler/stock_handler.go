package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/service"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

func (h *StockHandler) Routes(api, files fiber.Router) {
	api.Get("/stocks", h.GetStocks)
	api.Post("/stocks", h.AddStock)
	api.Delete("/stocks/:id", h.DeleteStock)
	api.Post("/stocks/load/:id", h.LoadStock)
	api.Post("/stocks/unload/:id", h.UnloadStock)
	files.Post("/stocks/import", h.ImportStocks)
	files.Get("/stocks/export", h.ExportStocks)
}

func (h *StockHandler) GetStocks(c *fiber.Ctx) error {
	stocks, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"stocks": stocks})
}

// AddStock adds quantity to the stock with that name, creating it if needed
func (h *StockHandler) AddStock(c *fiber.Ctx) error {
	var in model.StockInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}

	stock, err := h.service.Add(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": stock})
}

func (h *StockHandler) DeleteStock(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return success(c)
}

func (h *StockHandler) LoadStock(c *fiber.Ctx) error {
	return h.move(c, h.service.Load)
}

func (h *StockHandler) UnloadStock(c *fiber.Ctx) error {
	return h.move(c, h.service.Unload)
}

func (h *StockHandler) move(c *fiber.Ctx, apply func(ctx context.Context, id string, in model.StockMovement) error) error {
	var in model.StockMovement
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := apply(c.UserContext(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return success(c)
}

func (h *StockHandler) ImportStocks(c *fiber.Ctx) error {
	return importUpload(c, h.service.Import)
}

func (h *StockHandler) ExportStocks(c *fiber.Ctx) error {
	data, err := h.service.Export(c.UserContext())
	return sendCSV(c, "stocks.csv", data, err)
}
