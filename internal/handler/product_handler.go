package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/service"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) Routes(api, files fiber.Router) {
	api.Get("/products", h.GetProducts)
	api.Post("/products", h.CreateProduct)
	api.Put("/products/:id", h.UpdateProduct)
	api.Delete("/products/:id", h.DeleteProduct)
	files.Post("/products/import", h.ImportProducts)
	files.Get("/products/export", h.ExportProducts)
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var in model.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}

	product, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var in model.ProductUpdate
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.service.Update(c.UserContext(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return success(c)
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return success(c)
}

func (h *ProductHandler) ImportProducts(c *fiber.Ctx) error {
	return importUpload(c, h.service.Import)
}

func (h *ProductHandler) ExportProducts(c *fiber.Ctx) error {
	data, err := h.service.Export(c.UserContext())
	return sendCSV(c, "products.csv", data, err)
}
