package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"go-shop-backoffice/internal/middleware"
	"go-shop-backoffice/internal/service"
	"go-shop-backoffice/pkg/logger"
)

type AuthHandler struct {
	authService  service.AuthService
	secureCookie bool
}

func NewAuthHandler(authService service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// LoginRequest is accepted as form fields or JSON.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) Routes(api fiber.Router) {
	api.Post("/login", h.Login)
	api.Post("/logout", h.Logout)
}

// Login handles shop authentication
// POST /api/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	response, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		logger.Info(c.UserContext(), "login refused", "username", req.Username, "reason", err.Error())
		return respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    response.Token,
		Path:     "/",
		Expires:  response.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(response)
}

// Logout revokes the presented session and clears the cookie
// POST /api/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := middleware.TokenFromRequest(c); token != "" {
		if err := h.authService.Logout(c.UserContext(), token); err != nil {
			return respondError(c, err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return success(c)
}
