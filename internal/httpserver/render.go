package httpserver

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/beauty_portal/internal/middleware/auth"
	"github.com/Skotchmaster/beauty_portal/internal/middleware/csrf"
	"github.com/Skotchmaster/beauty_portal/internal/money"
	"github.com/Skotchmaster/beauty_portal/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes one page template inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.UTC
	}
	funcs := template.FuncMap{
		"money":   money.Format,
		"decimal": money.Decimal,
		"when": func(t time.Time) string {
			return t.In(loc).Format("Mon 2 Jan 2006, 15:04")
		},
		"short": func(id uuid.UUID) string {
			return strings.SplitN(id.String(), "-", 2)[0]
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}

	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		if name == "layout" {
			continue
		}
		base, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		t, err := base.ParseFS(templateFS, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Page is what every template receives.
type Page struct {
	Title   string
	User    *service.Identity
	CSRF    string
	Error   string
	Message string
	Data    any
}

func newPage(c echo.Context, title string, data any) Page {
	p := Page{
		Title:   title,
		CSRF:    csrf.Token(c),
		Error:   c.QueryParam("error"),
		Message: c.QueryParam("message"),
		Data:    data,
	}
	if id, ok := authmw.Identity(c); ok {
		p.User = id
	}
	return p
}

func render(c echo.Context, name, title string, data any) error {
	return c.Render(http.StatusOK, name, newPage(c, title, data))
}

func withQuery(target, key, value string) string {
	return target + "?" + url.Values{key: {value}}.Encode()
}

func back(c echo.Context, target string) error {
	return c.Redirect(http.StatusSeeOther, target)
}

func notice(c echo.Context, target, msg string) error {
	return c.Redirect(http.StatusSeeOther, withQuery(target, "message", msg))
}

// fail logs err and sends the browser back to target with the rendered message.
// verbose passes storage messages through unchanged.
func fail(c echo.Context, l *slog.Logger, event, target string, err error, verbose bool) error {
	if expected(err) {
		l.Warn(event, "status", http.StatusSeeOther, "reason", service.Message(err, false), "error", err)
	} else {
		l.Error(event, "status", http.StatusSeeOther, "error", err)
	}
	return c.Redirect(http.StatusSeeOther, withQuery(target, "error", service.Message(err, verbose)))
}

var userErrors = []error{
	service.ErrValidation,
	service.ErrEmptyCart,
	service.ErrInvalidCredentials,
	service.ErrConflict,
	service.ErrUnauthorized,
	service.ErrNotFound,
}

// expected reports whether err was caused by the caller rather than the system.
func expected(err error) bool {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func formValue(c echo.Context, name string) string {
	return strings.TrimSpace(c.FormValue(name))
}

// formUUID returns uuid.Nil for a missing or malformed id.
func formUUID(c echo.Context, name string) uuid.UUID {
	id, err := uuid.Parse(formValue(c, name))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func currentUser(c echo.Context) (uuid.UUID, error) {
	id, err := authmw.UserID(c)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return id, nil
}
