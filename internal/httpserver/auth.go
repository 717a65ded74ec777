package httpserver

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/beauty_portal/internal/logging"
	"github.com/Skotchmaster/beauty_portal/internal/metrics"
	authmw "github.com/Skotchmaster/beauty_portal/internal/middleware/auth"
	"github.com/Skotchmaster/beauty_portal/internal/service"
	"github.com/Skotchmaster/beauty_portal/internal/tokens"
)

type AuthHTTP struct {
	Svc  *service.AuthService
	Gate *authmw.Gate
}

func (h *AuthHTTP) LoginPage(c echo.Context) error {
	return render(c, "login", "Sign in", nil)
}

func (h *AuthHTTP) SignupPage(c echo.Context) error {
	return render(c, "signup", "Create account", nil)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	res, err := h.Svc.SignIn(ctx, c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		reason := "error"
		switch {
		case errors.Is(err, service.ErrValidation):
			reason = "invalid_input"
		case errors.Is(err, service.ErrInvalidCredentials):
			reason = "bad_credentials"
		}
		metrics.SignInFailures.WithLabelValues(reason).Inc()
		return fail(c, l, "login_failed", authmw.SignInPath, err, false)
	}

	h.Gate.SetAuthCookies(c, res)
	l.Info("login_successful", "user_id", res.Identity.UserID)
	return back(c, authmw.HomePath)
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	res, err := h.Svc.SignUp(ctx, c.FormValue("email"), c.FormValue("password"), c.FormValue("displayName"))
	if err != nil {
		return fail(c, l, "signup_failed", "/signup", err, false)
	}

	h.Gate.SetAuthCookies(c, res)
	l.Info("signup_successful", "user_id", res.Identity.UserID)
	return back(c, authmw.HomePath)
}

// Logout revokes the refresh token when there is one. Cookies are cleared either way.
func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if ck, err := c.Cookie(tokens.RefreshCookie); err == nil {
		if err := h.Svc.SignOut(ctx, ck.Value); err != nil {
			l.Error("logout_failed", "reason", "cannot revoke refresh token", "error", err)
		}
	}
	h.Gate.ClearAuthCookies(c)

	l.Info("successful_logout")
	return back(c, authmw.SignInPath)
}
