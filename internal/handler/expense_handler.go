package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/service"
)

type ExpenseHandler struct {
	expenses service.ExpenseService
	vendors  service.VendorService
}

func NewExpenseHandler(expenses service.ExpenseService, vendors service.VendorService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, vendors: vendors}
}

func (h *ExpenseHandler) Routes(api, files fiber.Router) {
	api.Get("/expenses", h.GetExpenses)
	api.Post("/expenses", h.CreateExpense)
	api.Put("/expenses/:id", h.UpdateExpense)
	api.Delete("/expenses/:id", h.DeleteExpense)
	files.Post("/expenses/import", h.ImportExpenses)
	files.Get("/expenses/export", h.ExportExpenses)

	api.Get("/vendors", h.GetVendors)
	api.Post("/vendors", h.CreateVendor)
	api.Put("/vendors/:id", h.UpdateVendor)
	api.Delete("/vendors/:id", h.DeleteVendor)
	files.Post("/vendors/import", h.ImportVendors)
	files.Get("/vendors/export", h.ExportVendors)
}

func (h *ExpenseHandler) GetExpenses(c *fiber.Ctx) error {
	expenses, err := h.expenses.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"expenses": expenses})
}

func (h *ExpenseHandler) CreateExpense(c *fiber.Ctx) error {
	var in model.ExpenseInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	expense, err := h.expenses.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": expense})
}

func (h *ExpenseHandler) UpdateExpense(c *fiber.Ctx) error {
	var in model.ExpenseUpdate
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.expenses.Update(c.UserContext(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return success(c)
}

func (h *ExpenseHandler) DeleteExpense(c *fiber.Ctx) error {
	if err := h.expenses.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return success(c)
}

func (h *ExpenseHandler) ImportExpenses(c *fiber.Ctx) error {
	return importUpload(c, h.expenses.Import)
}

func (h *ExpenseHandler) ExportExpenses(c *fiber.Ctx) error {
	data, err := h.expenses.Export(c.UserContext())
	return sendCSV(c, "expenses.csv", data, err)
}

func (h *ExpenseHandler) GetVendors(c *fiber.Ctx) error {
	vendors, err := h.vendors.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"vendors": vendors})
}

func (h *ExpenseHandler) CreateVendor(c *fiber.Ctx) error {
	var in model.VendorInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	vendor, err := h.vendors.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": vendor})
}

func (h *ExpenseHandler) UpdateVendor(c *fiber.Ctx) error {
	var in model.VendorUpdate
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.vendors.Update(c.UserContext(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return success(c)
}

func (h *ExpenseHandler) DeleteVendor(c *fiber.Ctx) error {
	if err := h.vendors.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return success(c)
}

func (h *ExpenseHandler) ImportVendors(c *fiber.Ctx) error {
	return importUpload(c, h.vendors.Import)
}

func (h *ExpenseHandler) ExportVendors(c *fiber.Ctx) error {
	data, err := h.vendors.Export(c.UserContext())
	return sendCSV(c, "vendors.csv", data, err)
}
