package service

import (
	"context"
	"errors"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/beauty_portal/internal/events"
	"github.com/Skotchmaster/beauty_portal/internal/logging"
	"github.com/Skotchmaster/beauty_portal/internal/metrics"
	"github.com/Skotchmaster/beauty_portal/internal/models"
	"github.com/Skotchmaster/beauty_portal/internal/repo"
)

const orderListLimit = 20

type StoreService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

type CartLine struct {
	ProductID  uuid.UUID
	Name       string
	UnitMinor  int64
	Quantity   int
	TotalMinor int64
}

type Cart struct {
	Lines      []CartLine
	TotalMinor int64
}

func (c Cart) Empty() bool { return len(c.Lines) == 0 }

var storePaths = []string{"/store"}

func (s *StoreService) AddToCart(ctx context.Context, userID, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return invalid("Missing product")
	}
	if err := s.Repo.AddToCart(ctx, userID, productID); err != nil {
		logging.FromContext(ctx).Error("add_to_cart_error", "product_id", productID, "error", err)
		return storage("add to cart", err)
	}
	publish(ctx, s.Events, events.Event{Type: events.CartUpdated, UserID: userID.String(), Paths: storePaths})
	return nil
}

// ParseQuantity accepts positive whole numbers only. Anything else means "remove".
func ParseQuantity(v string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// UpdateQuantity sets the line's quantity, or removes the line when quantity is not a positive integer.
func (s *StoreService) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity string) error {
	if productID == uuid.Nil {
		return invalid("Missing product")
	}
	var err error
	if qty, ok := ParseQuantity(quantity); ok {
		err = s.Repo.SetCartQuantity(ctx, userID, productID, qty)
	} else {
		err = s.Repo.RemoveFromCart(ctx, userID, productID)
	}
	if err != nil {
		return storage("update cart", err)
	}
	publish(ctx, s.Events, events.Event{Type: events.CartUpdated, UserID: userID.String(), Paths: storePaths})
	return nil
}

func (s *StoreService) Cart(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, storage("load cart", err)
	}
	cart := &Cart{Lines: make([]CartLine, 0, len(items))}
	for _, it := range items {
		line := CartLine{ProductID: it.ProductID, Name: "Product", Quantity: it.Quantity}
		if it.Product != nil {
			line.Name = it.Product.Name
			line.UnitMinor = it.Product.PriceCents
		}
		line.TotalMinor = line.UnitMinor * int64(line.Quantity)
		cart.TotalMinor += line.TotalMinor
		cart.Lines = append(cart.Lines, line)
	}
	sort.SliceStable(cart.Lines, func(i, j int) bool { return cart.Lines[i].Name < cart.Lines[j].Name })
	return cart, nil
}

// RequestOrder turns the cart into an order request and clears it, all or nothing.
func (s *StoreService) RequestOrder(ctx context.Context, userID uuid.UUID, note string) (*models.OrderRequest, error) {
	l := logging.FromContext(ctx).With("svc", "store.request_order")

	order, err := s.Repo.MakeOrder(ctx, userID, optional(note))
	if err != nil {
		if errors.Is(err, repo.ErrNoCartItems) {
			return nil, ErrEmptyCart
		}
		l.Error("request_order_error", "error", err)
		return nil, storage("request order", err)
	}
	metrics.OrdersRequested.Inc()
	l.Info("order_requested", "order_id", order.ID, "items", len(order.Items))
	publish(ctx, s.Events, events.Event{
		Type:   events.OrderRequested,
		UserID: userID.String(),
		Paths:  []string{"/store", "/admin"},
		IDs:    map[string]string{"order": order.ID.String()},
	})
	return order, nil
}

// SetOrderStatus follows the booking policy: any recognised status, any order.
func (s *StoreService) SetOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	st := models.OrderStatus(strings.TrimSpace(status))
	if st == "" {
		st = models.OrderRequested
	}
	if !slices.Contains(models.OrderStatuses, st) {
		return invalid("Invalid order status")
	}
	if err := s.Repo.SetOrderStatus(ctx, id, st); err != nil {
		return storage("set order status", err)
	}
	publish(ctx, s.Events, events.Event{Type: events.OrderStatusSet, Paths: []string{"/store", "/admin"}, IDs: map[string]string{"order": id.String(), "status": string(st)}})
	return nil
}

func (s *StoreService) Orders(ctx context.Context, userID uuid.UUID) ([]models.OrderRequest, error) {
	out, err := s.Repo.UserOrders(ctx, userID, orderListLimit)
	return out, storage("list orders", err)
}

func (s *StoreService) RecentOrders(ctx context.Context) ([]models.OrderRequest, error) {
	out, err := s.Repo.RecentOrders(ctx, orderListLimit)
	return out, storage("list orders", err)
}
