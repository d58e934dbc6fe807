package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/JonasLimhi/Edmund-Website/internal/events"
	"github.com/JonasLimhi/Edmund-Website/internal/logging"
	"github.com/JonasLimhi/Edmund-Website/internal/social"
	"github.com/JonasLimhi/Edmund-Website/internal/transport"
)

type SocialHandler struct {
	Linker *social.Linker
	Events *events.Publisher
}

func (h *SocialHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Events.Publish(ctx, events.TopicUser, event); err != nil {
		c.Logger().Errorf("event publish error: %v", err)
	}
}

func (h *SocialHandler) FBLogin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "social.fb_login")

	var req transport.ExternalLoginRequest
	if err := c.Bind(&req); err != nil {
		l.Error("fb_login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	session, err := h.Linker.LoginOrProvision(ctx, req.Email, req.Name)
	if err != nil {
		if errors.Is(err, social.ErrEmailRequired) {
			return echo.NewHTTPError(http.StatusBadRequest, "email is required")
		}
		l.Error("fb_login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot complete external login")
	}

	h.publish(c, map[string]any{
		"type":     "user_logged_in",
		"username": session.Username,
		"via":      "facebook",
	})

	l.Info("fb_login_success")
	return c.JSON(http.StatusOK, session)
}

func (h *SocialHandler) FBLink(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "social.fb_link")

	var req transport.ExternalLoginRequest
	if err := c.Bind(&req); err != nil {
		l.Error("fb_link_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Linker.LinkToCurrentUser(ctx, req.Email); err != nil {
		switch {
		case errors.Is(err, social.ErrEmailRequired):
			return echo.NewHTTPError(http.StatusBadRequest, "email is required")
		case errors.Is(err, social.ErrNotAuthenticated):
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		case errors.Is(err, social.ErrAlreadyLinked):
			return echo.NewHTTPError(http.StatusConflict, "this account is already linked")
		case errors.Is(err, social.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "current user not found")
		}
		l.Error("fb_link_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot link account")
	}

	h.publish(c, map[string]any{
		"type":  "user_linked",
		"email": req.Email,
	})

	l.Info("fb_link_success")
	return c.JSON(http.StatusOK, echo.Map{"message": "account linked"})
}
