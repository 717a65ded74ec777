package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/beauty_portal/internal/logging"
)

// RequireAdmin runs RequireUser first, then checks the profile's admin flag.
// The identity is read from profiles on every request, so a revoked flag takes effect at once.
func (g *Gate) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return g.RequireUser(func(c echo.Context) error {
		id, ok := Identity(c)
		if !ok || !id.IsAdmin {
			logging.FromContext(c.Request().Context()).Warn("admin_only", "status", 303, "reason", "not an admin")
			return seeOther(c, HomePath)
		}
		return next(c)
	})
}
