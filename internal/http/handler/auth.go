package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"docvault/internal/http/middleware"
	"docvault/internal/service"
	"docvault/internal/session"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func setSessionCookie(c *fiber.Ctx, id string, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    id,
		Path:     "/",
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookie(c *fiber.Ctx, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Signup registers a new account and starts a session for it.
//
// @Summary Register a new account
// @Accept json
// @Produce json
// @Success 201 {object} model.Account
// @Router /api/signup [post]
func Signup(authSvc service.AuthService, sessions *session.Registry, cookieSecure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signupRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		acc, err := authSvc.Register(c.UserContext(), req.Name, req.Email, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}

		sid, err := sessions.Start(acc.ID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		setSessionCookie(c, sid, cookieSecure)

		return c.Status(fiber.StatusCreated).JSON(acc)
	}
}

// Login verifies credentials and starts a session.
//
// @Summary Authenticate with email and password
// @Accept json
// @Produce json
// @Success 200 {object} model.Account
// @Router /api/login [post]
func Login(authSvc service.AuthService, sessions *session.Registry, cookieSecure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		acc, err := authSvc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}

		sid, err := sessions.Start(acc.ID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		setSessionCookie(c, sid, cookieSecure)

		return c.JSON(acc)
	}
}

// Logout ends the session named by the cookie. Idempotent: an absent or
// already-ended session is not an error.
//
// @Summary End the current session
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/logout [post]
func Logout(sessions *session.Registry, cookieSecure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies(middleware.SessionCookieName); sid != "" {
			sessions.End(sid)
		}
		clearSessionCookie(c, cookieSecure)
		return c.JSON(fiber.Map{"message": "logged out"})
	}
}

// Whoami returns the account bound to the current session.
//
// @Summary Inspect the current session
// @Produce json
// @Success 200 {object} model.Account
// @Router /api/session [get]
func Whoami(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acc, err := authSvc.Account(c.UserContext(), middleware.AccountID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(acc)
	}
}
