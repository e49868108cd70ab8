package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/service"
)

type StaffHandler struct {
	employees  service.EmployeeService
	attendance service.AttendanceService
}

func NewStaffHandler(employees service.EmployeeService, attendance service.AttendanceService) *StaffHandler {
	return &StaffHandler{employees: employees, attendance: attendance}
}

func (h *StaffHandler) Routes(api, files fiber.Router) {
	api.Get("/employees", h.GetEmployees)
	api.Post("/employees", h.CreateEmployee)
	api.Put("/employees/:id", h.UpdateEmployee)
	api.Delete("/employees/:id", h.DeleteEmployee)
	files.Post("/employees/import", h.ImportEmployees)
	files.Get("/employees/export", h.ExportEmployees)

	api.Get("/attendance", h.GetAttendance)
	api.Post("/attendance", h.MarkAttendance)
	api.Delete("/attendance/:id", h.DeleteAttendance)
	files.Post("/attendance/import", h.ImportAttendance)
	files.Get("/attendance/export", h.ExportAttendance)
}

func (h *StaffHandler) GetEmployees(c *fiber.Ctx) error {
	employees, err := h.employees.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"employees": employees})
}

func (h *StaffHandler) CreateEmployee(c *fiber.Ctx) error {
	var in model.EmployeeInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	employee, err := h.employees.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": employee})
}

func (h *StaffHandler) UpdateEmployee(c *fiber.Ctx) error {
	var in model.EmployeeUpdate
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.employees.Update(c.UserContext(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return success(c)
}

func (h *StaffHandler) DeleteEmployee(c *fiber.Ctx) error {
	if err := h.employees.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return success(c)
}

func (h *StaffHandler) ImportEmployees(c *fiber.Ctx) error {
	return importUpload(c, h.employees.Import)
}

func (h *StaffHandler) ExportEmployees(c *fiber.Ctx) error {
	data, err := h.employees.Export(c.UserContext())
	return sendCSV(c, "employees.csv", data, err)
}

func (h *StaffHandler) GetAttendance(c *fiber.Ctx) error {
	marks, err := h.attendance.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"attendance": marks})
}

func (h *StaffHandler) MarkAttendance(c *fiber.Ctx) error {
	var in model.AttendanceInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	mark, err := h.attendance.Mark(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": mark})
}

func (h *StaffHandler) DeleteAttendance(c *fiber.Ctx) error {
	if err := h.attendance.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return success(c)
}

func (h *StaffHandler) ImportAttendance(c *fiber.Ctx) error {
	return importUpload(c, h.attendance.Import)
}

func (h *StaffHandler) ExportAttendance(c *fiber.Ctx) error {
	data, err := h.attendance.Export(c.UserContext())
	return sendCSV(c, "attendance.csv", data, err)
}
