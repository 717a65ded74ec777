package ratelimit

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestPerKeyBudget(t *testing.T) {
	l := PerMinute(2)
	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
}

func TestMiddleware(t *testing.T) {
	l := PerMinute(1)
	l.OnLimit = func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/login?error=Too+many+attempts")
	}

	e := echo.New()
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, l.Middleware)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send().Code)
	rec := send()
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?error=Too+many+attempts", rec.Header().Get(echo.HeaderLocation))
}

func TestDefaultRejection(t *testing.T) {
	l := PerMinute(1)
	e := echo.New()
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, l.Middleware)

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, want, rec.Code, i)
	}
}

func TestForwardedForIgnoredWithoutTrustedProxy(t *testing.T) {
	l := PerMinute(2)
	e := echo.New()
	e.IPExtractor = ClientIP(false)
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, l.Middleware)

	allowed := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		req.Header.Set(echo.HeaderXForwardedFor, fmt.Sprintf("198.51.100.%d", i))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 2, allowed)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:4000"
	req.Header.Set(echo.HeaderXForwardedFor, "198.51.100.9")
	assert.Equal(t, "10.0.0.2", ClientIP(false)(req))
	assert.Equal(t, "198.51.100.9", ClientIP(true)(req))

	req.RemoteAddr = "203.0.113.7:4000"
	assert.Equal(t, "203.0.113.7", ClientIP(true)(req))
}
