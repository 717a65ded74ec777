package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/beauty_portal/internal/logging"
	"github.com/Skotchmaster/beauty_portal/internal/models"
	"github.com/Skotchmaster/beauty_portal/internal/service"
)

const bookingPath = "/booking"

type BookingHTTP struct {
	Svc     *service.BookingService
	Catalog *service.CatalogService
}

type bookingData struct {
	Services []models.Service
	Bookings []models.Booking
}

func (h *BookingHTTP) Page(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	services, err := h.Catalog.ActiveServices(ctx)
	if err != nil {
		return err
	}
	bookings, err := h.Svc.ForUser(ctx, userID)
	if err != nil {
		return err
	}
	return render(c, "booking", "Booking", bookingData{Services: services, Bookings: bookings})
}

func (h *BookingHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "booking.create")

	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	b, err := h.Svc.Create(ctx, userID, service.BookingInput{
		ServiceID: c.FormValue("serviceId"),
		StartsAt:  c.FormValue("startsAt"),
		Note:      c.FormValue("note"),
	})
	if err != nil {
		return fail(c, l, "create_booking_error", bookingPath, err, false)
	}

	l.Info("booking_requested", "booking_id", b.ID)
	return notice(c, bookingPath, "Booking requested")
}
