package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/beauty_portal/internal/logging"
	"github.com/Skotchmaster/beauty_portal/internal/models"
	"github.com/Skotchmaster/beauty_portal/internal/service"
)

const adminPath = "/admin"

// AdminHTTP is the console. Every failure shows the raw store message.
type AdminHTTP struct {
	Admin     *service.AdminService
	Catalog   *service.CatalogService
	Bookings  *service.BookingService
	Community *service.CommunityService
	Store     *service.StoreService
}

type adminData struct {
	*service.Dashboard
	BookingStatuses []models.BookingStatus
	OrderStatuses   []models.OrderStatus
}

func (h *AdminHTTP) Page(c echo.Context) error {
	d, err := h.Admin.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, "admin", "Admin", adminData{
		Dashboard:       d,
		BookingStatuses: models.BookingStatuses,
		OrderStatuses:   models.OrderStatuses,
	})
}

func (h *AdminHTTP) done(c echo.Context, handler string, err error) error {
	if err != nil {
		l := logging.FromContext(c.Request().Context()).With("handler", handler)
		return fail(c, l, "admin_action_error", adminPath, err, true)
	}
	return back(c, adminPath)
}

func (h *AdminHTTP) create(kind service.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, err := h.Catalog.Create(c.Request().Context(), service.CatalogInput{
			Kind:     kind,
			Name:     c.FormValue("name"),
			Price:    c.FormValue("priceMwk"),
			Duration: c.FormValue("durationMinutes"),
		})
		return h.done(c, "admin.create_"+string(kind), err)
	}
}

func (h *AdminHTTP) setActive(kind service.Kind, idField string) echo.HandlerFunc {
	return func(c echo.Context) error {
		active := formValue(c, "active") == "true"
		err := h.Catalog.SetActive(c.Request().Context(), kind, formUUID(c, idField), active)
		return h.done(c, "admin.set_active_"+string(kind), err)
	}
}

func (h *AdminHTTP) setPrice(kind service.Kind, idField string) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := h.Catalog.SetPrice(c.Request().Context(), kind, formUUID(c, idField), c.FormValue("priceMwk"))
		return h.done(c, "admin.set_price_"+string(kind), err)
	}
}

func (h *AdminHTTP) CreateService() echo.HandlerFunc { return h.create(service.KindService) }
func (h *AdminHTTP) CreateProduct() echo.HandlerFunc { return h.create(service.KindProduct) }

func (h *AdminHTTP) ServiceActive() echo.HandlerFunc {
	return h.setActive(service.KindService, "serviceId")
}

func (h *AdminHTTP) ProductActive() echo.HandlerFunc {
	return h.setActive(service.KindProduct, "productId")
}

func (h *AdminHTTP) ServicePrice() echo.HandlerFunc {
	return h.setPrice(service.KindService, "serviceId")
}

func (h *AdminHTTP) ProductPrice() echo.HandlerFunc {
	return h.setPrice(service.KindProduct, "productId")
}

// DeletePost is moderation. An unknown id changes nothing.
func (h *AdminHTTP) DeletePost(c echo.Context) error {
	err := h.Community.DeletePost(c.Request().Context(), formUUID(c, "postId"))
	return h.done(c, "admin.delete_post", err)
}

func (h *AdminHTTP) BookingStatus(c echo.Context) error {
	err := h.Bookings.SetStatus(c.Request().Context(), formUUID(c, "bookingId"), c.FormValue("status"))
	return h.done(c, "admin.booking_status", err)
}

func (h *AdminHTTP) OrderStatus(c echo.Context) error {
	err := h.Store.SetOrderStatus(c.Request().Context(), formUUID(c, "orderId"), c.FormValue("status"))
	return h.done(c, "admin.order_status", err)
}
