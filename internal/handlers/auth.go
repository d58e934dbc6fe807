package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/JonasLimhi/Edmund-Website/internal/events"
	"github.com/JonasLimhi/Edmund-Website/internal/identity"
	"github.com/JonasLimhi/Edmund-Website/internal/logging"
	"github.com/JonasLimhi/Edmund-Website/internal/models"
	"github.com/JonasLimhi/Edmund-Website/internal/transport"
)

type AuthHandler struct {
	Identity *identity.Manager
	Events   *events.Publisher
}

func (h *AuthHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Events.Publish(ctx, events.TopicUser, event); err != nil {
		c.Logger().Errorf("event publish error: %v", err)
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Error("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Username == "" || req.Password == "" {
		l.Warn("register_error", "status", 400, "reason", "username and password are required")
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	user, err := h.Identity.Register(ctx, req.Username, req.Password, models.RoleCustomer)
	if err != nil {
		if errors.Is(err, identity.ErrUserExists) {
			return echo.NewHTTPError(http.StatusConflict, "user already exists")
		}
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save user")
	}

	h.publish(c, map[string]any{
		"type":     "user_registered",
		"username": user.Username,
	})

	l.Info("register_success")
	return c.JSON(http.StatusCreated, echo.Map{
		"username": user.Username,
		"role":     user.Role,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Error("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	session, err := h.Identity.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		}
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save session")
	}

	h.publish(c, map[string]any{
		"type":     "user_logged_in",
		"username": session.Username,
	})

	l.Info("login_success")
	return c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) LogOut(c echo.Context) error {
	ctx := c.Request().Context()

	session, _ := h.Identity.Session()
	if err := h.Identity.Logout(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot clear session")
	}

	if session.Username != "" {
		h.publish(c, map[string]any{
			"type":     "user_logged_out",
			"username": session.Username,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHandler) GetSession(c echo.Context) error {
	session, ok := h.Identity.Session()
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, session)
}
