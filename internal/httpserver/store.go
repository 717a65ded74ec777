package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/beauty_portal/internal/logging"
	"github.com/Skotchmaster/beauty_portal/internal/models"
	"github.com/Skotchmaster/beauty_portal/internal/service"
)

const storePath = "/store"

type StoreHTTP struct {
	Svc     *service.StoreService
	Catalog *service.CatalogService
}

type storeData struct {
	Products []models.Product
	Cart     *service.Cart
	Orders   []models.OrderRequest
}

func (h *StoreHTTP) Page(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	products, err := h.Catalog.ActiveProducts(ctx)
	if err != nil {
		return err
	}
	cart, err := h.Svc.Cart(ctx, userID)
	if err != nil {
		return err
	}
	orders, err := h.Svc.Orders(ctx, userID)
	if err != nil {
		return err
	}
	return render(c, "store", "Store", storeData{Products: products, Cart: cart, Orders: orders})
}

func (h *StoreHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.add_to_cart")

	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.Svc.AddToCart(ctx, userID, formUUID(c, "productId")); err != nil {
		return fail(c, l, "add_to_cart_error", storePath, err, false)
	}
	return back(c, storePath)
}

func (h *StoreHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.update_quantity")

	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.Svc.UpdateQuantity(ctx, userID, formUUID(c, "productId"), c.FormValue("quantity")); err != nil {
		return fail(c, l, "update_quantity_error", storePath, err, false)
	}
	return back(c, storePath)
}

func (h *StoreHTTP) RequestOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.request_order")

	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if _, err := h.Svc.RequestOrder(ctx, userID, c.FormValue("note")); err != nil {
		return fail(c, l, "request_order_error", storePath, err, false)
	}
	return notice(c, storePath, "Order request sent")
}
