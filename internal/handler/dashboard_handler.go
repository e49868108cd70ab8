package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-shop-backoffice/internal/service"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func (h *DashboardHandler) Routes(api fiber.Router) {
	api.Get("/dashboard", h.GetCounts)
}

// GetCounts returns the record counts shown on the landing page
func (h *DashboardHandler) GetCounts(c *fiber.Ctx) error {
	counts, err := h.service.GetCounts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(counts)
}
