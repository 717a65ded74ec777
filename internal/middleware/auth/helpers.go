package auth

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/beauty_portal/internal/service"
	"github.com/Skotchmaster/beauty_portal/internal/tokens"
)

const (
	userIDKey   = "user_id"
	identityKey = "identity"

	SignInPath = "/login"
	HomePath   = "/"
)

var errNoIdentity = errors.New("unauthorized")

// Gate resolves the caller from the session cookies.
type Gate struct {
	Auth   *service.AuthService
	Secure bool
}

func setUserContext(c echo.Context, id *service.Identity) {
	c.Set(userIDKey, id.UserID.String())
	c.Set(identityKey, id)
}

// Identity returns the caller stored by the gate, if any.
func Identity(c echo.Context) (*service.Identity, bool) {
	id, ok := c.Get(identityKey).(*service.Identity)
	return id, ok && id != nil
}

func UserID(c echo.Context) (uuid.UUID, error) {
	s, ok := c.Get(userIDKey).(string)
	if !ok || s == "" {
		return uuid.Nil, errNoIdentity
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errNoIdentity
	}
	return id, nil
}

func cookieValue(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}

// SetAuthCookies stores a fresh token pair on the response.
func (g *Gate) SetAuthCookies(c echo.Context, res *service.LoginResult) {
	c.SetCookie(tokens.CreateCookie(tokens.AccessCookie, res.AccessToken, "/", res.AccessExp, g.Secure))
	c.SetCookie(tokens.CreateCookie(tokens.RefreshCookie, res.RefreshToken, "/", res.RefreshExp, g.Secure))
}

func (g *Gate) ClearAuthCookies(c echo.Context) {
	c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/", g.Secure))
	c.SetCookie(tokens.DeleteCookie(tokens.RefreshCookie, "/", g.Secure))
}

func seeOther(c echo.Context, path string) error {
	return c.Redirect(http.StatusSeeOther, path)
}
