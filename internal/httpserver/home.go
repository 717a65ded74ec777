package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/beauty_portal/internal/logging"
	"github.com/Skotchmaster/beauty_portal/internal/models"
	"github.com/Skotchmaster/beauty_portal/internal/service"
)

type HomeHTTP struct {
	Catalog *service.CatalogService
}

type homeData struct {
	Services []models.Service
}

// Home is the public landing page with the current service menu.
func (h *HomeHTTP) Home(c echo.Context) error {
	ctx := c.Request().Context()

	services, err := h.Catalog.ActiveServices(ctx)
	if err != nil {
		logging.FromContext(ctx).With("handler", "home").Error("list_services_error", "error", err)
	}
	return render(c, "home", "Kimence Beauty", homeData{Services: services})
}

type setupData struct {
	Missing []string
}

// Setup answers every request while the server runs without its required configuration.
func Setup(missing []string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().URL.Path != "/" {
			return back(c, "/")
		}
		return render(c, "setup", "Setup required", setupData{Missing: missing})
	}
}
