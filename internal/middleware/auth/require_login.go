package auth

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/beauty_portal/internal/logging"
	"github.com/Skotchmaster/beauty_portal/internal/service"
	"github.com/Skotchmaster/beauty_portal/internal/tokens"
)

// resolve finds the caller behind the cookies. An expired or missing access token
// is replaced through the refresh token, rotating both cookies.
func (g *Gate) resolve(c echo.Context) (*service.Identity, error) {
	ctx := c.Request().Context()

	access := cookieValue(c, tokens.AccessCookie)
	id, err := g.Auth.CurrentUser(ctx, access)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, service.ErrUnauthorized) {
		return nil, err
	}
	if access != "" && !errors.Is(err, jwt.ErrTokenExpired) {
		return nil, err
	}

	refresh := cookieValue(c, tokens.RefreshCookie)
	if refresh == "" {
		return nil, err
	}
	res, err := g.Auth.Refresh(ctx, refresh)
	if err != nil {
		return nil, err
	}
	g.SetAuthCookies(c, res)
	return &res.Identity, nil
}

// RequireUser lets signed-in callers through and sends everyone else to the sign-in page.
// The wrapped handler never runs for anonymous callers.
func (g *Gate) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("mw", "require_user")

		id, err := g.resolve(c)
		if err != nil {
			if !errors.Is(err, service.ErrUnauthorized) {
				l.Error("identity_lookup_error", "status", 500, "error", err)
				return err
			}
			if errors.Is(err, service.ErrSessionRotated) {
				// A concurrent request already set the new pair; keep it.
				l.Info("refresh_race", "status", 303)
				if m := c.Request().Method; m == http.MethodGet || m == http.MethodHead {
					return seeOther(c, c.Request().URL.RequestURI())
				}
				return seeOther(c, SignInPath)
			}
			l.Info("anonymous_redirect", "status", 303, "reason", err.Error())
			g.ClearAuthCookies(c)
			return seeOther(c, SignInPath)
		}

		setUserContext(c, id)
		return next(c)
	}
}

// OptionalUser records the caller when there is one and never redirects.
func (g *Gate) OptionalUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if id, err := g.resolve(c); err == nil {
			setUserContext(c, id)
		}
		return next(c)
	}
}
