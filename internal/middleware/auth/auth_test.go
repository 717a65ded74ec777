package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/beauty_portal/internal/db/dbtest"
	"github.com/Skotchmaster/beauty_portal/internal/models"
	"github.com/Skotchmaster/beauty_portal/internal/repo"
	"github.com/Skotchmaster/beauty_portal/internal/service"
	"github.com/Skotchmaster/beauty_portal/internal/tokens"
)

type env struct {
	e    *echo.Echo
	gate *Gate
	auth *service.AuthService
	repo *repo.GormRepo
	hits int
}

func newEnv(t *testing.T) *env {
	t.Helper()
	r := repo.New(dbtest.New(t))
	a := &service.AuthService{Repo: r, AccessSecret: []byte("access"), RefreshSecret: []byte("refresh")}
	v := &env{e: echo.New(), gate: &Gate{Auth: a}, auth: a, repo: r}

	handler := func(c echo.Context) error {
		v.hits++
		uid, err := UserID(c)
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, uid.String())
	}
	v.e.GET("/me", handler, v.gate.RequireUser)
	v.e.GET("/admin", handler, v.gate.RequireAdmin)
	v.e.GET("/", func(c echo.Context) error {
		if id, ok := Identity(c); ok {
			return c.String(http.StatusOK, id.Email)
		}
		return c.String(http.StatusOK, "anonymous")
	}, v.gate.OptionalUser)
	return v
}

func (v *env) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	v.e.ServeHTTP(rec, req)
	return rec
}

func (v *env) signUp(t *testing.T, email string) *service.LoginResult {
	t.Helper()
	res, err := v.auth.SignUp(context.Background(), email, "secret123", "")
	require.NoError(t, err)
	return res
}

func cookie(name, value string) *http.Cookie {
	return &http.Cookie{Name: name, Value: value}
}

func TestRequireUserRedirectsAnonymous(t *testing.T) {
	v := newEnv(t)

	rec := v.get("/me")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, SignInPath, rec.Header().Get(echo.HeaderLocation))
	assert.Zero(t, v.hits)
}

func TestRequireUserRejectsGarbageToken(t *testing.T) {
	v := newEnv(t)

	rec := v.get("/me", cookie(tokens.AccessCookie, "not-a-jwt"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, SignInPath, rec.Header().Get(echo.HeaderLocation))
	assert.Zero(t, v.hits)
}

func TestRequireUserWithAccessToken(t *testing.T) {
	v := newEnv(t)
	res := v.signUp(t, "ada@example.com")

	rec := v.get("/me", cookie(tokens.AccessCookie, res.AccessToken))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, res.Identity.UserID.String(), rec.Body.String())
}

func TestRequireUserRefreshesExpiredAccess(t *testing.T) {
	v := newEnv(t)
	res := v.signUp(t, "ada@example.com")

	expired, err := tokens.CreateAccessToken(v.auth.AccessSecret, res.Identity.UserID.String(), false, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	rec := v.get("/me", cookie(tokens.AccessCookie, expired), cookie(tokens.RefreshCookie, res.RefreshToken))
	require.Equal(t, http.StatusOK, rec.Code)

	set := map[string]string{}
	for _, c := range rec.Result().Cookies() {
		set[c.Name] = c.Value
	}
	assert.NotEmpty(t, set[tokens.AccessCookie])
	assert.NotEmpty(t, set[tokens.RefreshCookie])
	assert.NotEqual(t, res.RefreshToken, set[tokens.RefreshCookie])

	rec = v.get("/me", cookie(tokens.AccessCookie, expired), cookie(tokens.RefreshCookie, res.RefreshToken))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 1, v.hits)
}

func TestConcurrentRefreshKeepsWinningCookies(t *testing.T) {
	v := newEnv(t)
	res := v.signUp(t, "ada@example.com")

	expired, err := tokens.CreateAccessToken(v.auth.AccessSecret, res.Identity.UserID.String(), false, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	stale := []*http.Cookie{cookie(tokens.AccessCookie, expired), cookie(tokens.RefreshCookie, res.RefreshToken)}

	require.Equal(t, http.StatusOK, v.get("/me?tab=1", stale...).Code)

	rec := v.get("/me?tab=1", stale...)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/me?tab=1", rec.Header().Get(echo.HeaderLocation))
	assert.Empty(t, rec.Result().Cookies())

	old := time.Now().Add(-2 * repo.RotationGrace).Unix()
	require.NoError(t, v.repo.DB.Model(&models.RefreshToken{}).Where("revoked = ?", true).Update("rotated_at", old).Error)

	rec = v.get("/me?tab=1", stale...)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, SignInPath, rec.Header().Get(echo.HeaderLocation))
	cleared := map[string]bool{}
	for _, c := range rec.Result().Cookies() {
		cleared[c.Name] = c.Value == "" && c.MaxAge < 0
	}
	assert.True(t, cleared[tokens.AccessCookie])
	assert.True(t, cleared[tokens.RefreshCookie])
	assert.Equal(t, 1, v.hits)
}

func TestRequireAdmin(t *testing.T) {
	v := newEnv(t)
	res := v.signUp(t, "ada@example.com")
	access := cookie(tokens.AccessCookie, res.AccessToken)

	rec := v.get("/admin", access)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, HomePath, rec.Header().Get(echo.HeaderLocation))
	assert.Zero(t, v.hits)

	require.NoError(t, v.repo.SetAdmin(context.Background(), res.Identity.UserID, true))
	rec = v.get("/admin", access)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, v.repo.SetAdmin(context.Background(), res.Identity.UserID, false))
	rec = v.get("/admin", access)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRequireAdminAnonymousGoesToSignIn(t *testing.T) {
	v := newEnv(t)

	rec := v.get("/admin")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, SignInPath, rec.Header().Get(echo.HeaderLocation))
}

func TestOptionalUser(t *testing.T) {
	v := newEnv(t)
	res := v.signUp(t, "ada@example.com")

	assert.Equal(t, "anonymous", v.get("/").Body.String())
	assert.Equal(t, "ada@example.com", v.get("/", cookie(tokens.AccessCookie, res.AccessToken)).Body.String())
}
