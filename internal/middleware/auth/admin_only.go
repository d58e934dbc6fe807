package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JonasLimhi/Edmund-Website/internal/identity"
	"github.com/JonasLimhi/Edmund-Website/internal/models"
)

// RequireAdmin gates catalog mutations on the session role. The role comes
// straight from the persisted session snapshot; it is never recomputed here.
func RequireAdmin(m *identity.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := m.Session()
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}
			if session.Role != models.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin only")
			}
			return next(c)
		}
	}
}

// RequireLogin gates operations that only need an active session.
func RequireLogin(m *identity.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := m.Session(); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}
			return next(c)
		}
	}
}
