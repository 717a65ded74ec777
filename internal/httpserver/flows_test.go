package httpserver

import (
	"context"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/beauty_portal/internal/models"
)

func TestCartToOrder(t *testing.T) {
	s := newTestServer(t)
	user, userID := s.signUp(t, "ada@example.com", false)
	ctx := context.Background()

	a := models.Product{Name: "A", PriceCents: 100, Active: true}
	b := models.Product{Name: "B", PriceCents: 250, Active: true}
	require.NoError(t, s.repo.CreateProduct(ctx, &a))
	require.NoError(t, s.repo.CreateProduct(ctx, &b))

	for _, id := range []uuid.UUID{a.ID, a.ID, b.ID} {
		u := location(t, s.post("/store/cart", user, url.Values{"productId": {id.String()}}))
		assert.Equal(t, "/store", u.Path)
		assert.Empty(t, u.RawQuery)
	}

	u := location(t, s.post("/store/order", user, url.Values{"note": {"pickup Friday"}}))
	assert.Equal(t, "/store", u.Path)
	assert.Equal(t, "Order request sent", u.Query().Get("message"))

	orders, err := s.repo.UserOrders(ctx, userID, 20)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	got := map[uuid.UUID]int{}
	for _, it := range orders[0].Items {
		got[it.ProductID] = it.Quantity
	}
	assert.Equal(t, map[uuid.UUID]int{a.ID: 2, b.ID: 1}, got)
	assert.Zero(t, s.count(t, &models.CartItem{}))

	u = location(t, s.post("/store/order", user, nil))
	assert.Equal(t, "Cart is empty", u.Query().Get("error"))
	assert.Equal(t, int64(1), s.count(t, &models.OrderRequest{}))
}

func TestCartQuantityZeroRemoves(t *testing.T) {
	s := newTestServer(t)
	user, userID := s.signUp(t, "ada@example.com", false)
	ctx := context.Background()
	p := models.Product{Name: "A", PriceCents: 100, Active: true}
	require.NoError(t, s.repo.CreateProduct(ctx, &p))

	location(t, s.post("/store/cart", user, url.Values{"productId": {p.ID.String()}}))
	location(t, s.post("/store/cart/quantity", user, url.Values{"productId": {p.ID.String()}, "quantity": {"5"}}))
	location(t, s.post("/store/cart/quantity", user, url.Values{"productId": {p.ID.String()}, "quantity": {"0"}}))
	assert.Zero(t, s.count(t, &models.CartItem{}))

	location(t, s.post("/store/cart", user, url.Values{"productId": {p.ID.String()}}))
	items, err := s.repo.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestAddToCartHidesStorageDetails(t *testing.T) {
	s := newTestServer(t)
	user, _ := s.signUp(t, "ada@example.com", false)

	u := location(t, s.post("/store/cart", user, url.Values{"productId": {uuid.NewString()}}))
	assert.Equal(t, "Something went wrong, please try again", u.Query().Get("error"))

	u = location(t, s.post("/store/cart", user, url.Values{"productId": {"nope"}}))
	assert.Equal(t, "Missing product", u.Query().Get("error"))
}

func TestAdminPriceFromDecimal(t *testing.T) {
	s := newTestServer(t)
	admin, _ := s.signUp(t, "admin@example.com", true)
	ctx := context.Background()

	u := location(t, s.post("/admin/services", admin, url.Values{"name": {"Facial"}, "durationMinutes": {"60"}, "priceMwk": {"20"}}))
	assert.Equal(t, "/admin", u.Path)
	assert.Empty(t, u.RawQuery)

	services, err := s.repo.Services(ctx, false)
	require.NoError(t, err)
	require.Len(t, services, 1)
	id := services[0].ID.String()

	location(t, s.post("/admin/services/price", admin, url.Values{"serviceId": {id}, "priceMwk": {"25.5"}}))
	services, err = s.repo.Services(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2550), services[0].PriceCents)
	assert.Contains(t, s.get("/admin", admin).Body.String(), "MWK 25.50")

	u = location(t, s.post("/admin/services/price", admin, url.Values{"serviceId": {id}, "priceMwk": {"-1"}}))
	assert.Equal(t, "Invalid service price", u.Query().Get("error"))

	location(t, s.post("/admin/services/active", admin, url.Values{"serviceId": {id}, "active": {"false"}}))
	active, err := s.repo.Services(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	u = location(t, s.post("/admin/services/active", admin, url.Values{"serviceId": {uuid.NewString()}, "active": {"true"}}))
	assert.Empty(t, u.RawQuery)
}

func TestAdminCreateProductValidation(t *testing.T) {
	s := newTestServer(t)
	admin, _ := s.signUp(t, "admin@example.com", true)

	u := location(t, s.post("/admin/products", admin, url.Values{"name": {"  "}, "priceMwk": {"5"}}))
	assert.Equal(t, "Invalid product data", u.Query().Get("error"))

	u = location(t, s.post("/admin/products", admin, url.Values{"name": {"Oil"}, "priceMwk": {"abc"}}))
	assert.Equal(t, "Invalid product price", u.Query().Get("error"))
	assert.Zero(t, s.count(t, &models.Product{}))

	location(t, s.post("/admin/products", admin, url.Values{"name": {"Oil"}, "priceMwk": {"5"}}))
	assert.Equal(t, int64(1), s.count(t, &models.Product{}))
}

func TestLikeToggleTwiceRestores(t *testing.T) {
	s := newTestServer(t)
	user, userID := s.signUp(t, "ada@example.com", false)
	ctx := context.Background()
	post := models.Post{UserID: userID, Content: "hello"}
	require.NoError(t, s.repo.CreatePost(ctx, &post))

	thread := "/community/" + post.ID.String()
	u := location(t, s.post("/community/like", user, url.Values{"postId": {post.ID.String()}, "returnTo": {thread}}))
	assert.Equal(t, thread, u.Path)
	assert.Equal(t, int64(1), s.count(t, &models.PostLike{}))

	u = location(t, s.post("/community/like", user, url.Values{"postId": {post.ID.String()}, "returnTo": {"https://evil.example"}}))
	assert.Equal(t, "/community", u.Path)
	assert.Zero(t, s.count(t, &models.PostLike{}))
}

func TestCommentAndModeration(t *testing.T) {
	s := newTestServer(t)
	user, userID := s.signUp(t, "ada@example.com", false)
	admin, _ := s.signUp(t, "admin@example.com", true)
	ctx := context.Background()
	post := models.Post{UserID: userID, Content: "hello"}
	require.NoError(t, s.repo.CreatePost(ctx, &post))

	u := location(t, s.post("/community/comments", user, url.Values{"postId": {post.ID.String()}, "content": {"  "}}))
	assert.Equal(t, "/community/"+post.ID.String(), u.Path)
	assert.NotEmpty(t, u.Query().Get("error"))

	location(t, s.post("/community/comments", user, url.Values{"postId": {post.ID.String()}, "content": {"lovely"}}))
	assert.Equal(t, int64(1), s.count(t, &models.Comment{}))

	u = location(t, s.post("/community/posts", user, url.Values{"content": {"   "}}))
	assert.Equal(t, "Post content is required", u.Query().Get("error"))

	location(t, s.post("/admin/posts/delete", admin, url.Values{"postId": {post.ID.String()}}))
	assert.Zero(t, s.count(t, &models.Post{}))
	assert.Zero(t, s.count(t, &models.Comment{}))
}

func TestBookingFlow(t *testing.T) {
	s := newTestServer(t)
	user, userID := s.signUp(t, "ada@example.com", false)
	admin, _ := s.signUp(t, "admin@example.com", true)
	ctx := context.Background()
	svc := models.Service{Name: "Facial", DurationMinutes: 60, PriceCents: 2500, Active: true}
	require.NoError(t, s.repo.CreateService(ctx, &svc))

	u := location(t, s.post("/booking", user, url.Values{"serviceId": {svc.ID.String()}, "startsAt": {"tomorrow"}}))
	assert.Equal(t, "Invalid date time", u.Query().Get("error"))

	u = location(t, s.post("/booking", user, url.Values{"startsAt": {"2026-11-01T10:00"}}))
	assert.Equal(t, "Missing service or time", u.Query().Get("error"))

	u = location(t, s.post("/booking", user, url.Values{"serviceId": {svc.ID.String()}, "startsAt": {"2026-11-01T10:00"}, "note": {"first visit"}}))
	assert.Equal(t, "Booking requested", u.Query().Get("message"))

	bookings, err := s.repo.UserBookings(ctx, userID, 20)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, models.BookingRequested, bookings[0].Status)

	location(t, s.post("/admin/bookings/status", admin, url.Values{"bookingId": {bookings[0].ID.String()}, "status": {"completed"}}))
	location(t, s.post("/admin/bookings/status", admin, url.Values{"bookingId": {bookings[0].ID.String()}, "status": {"requested"}}))
	bookings, err = s.repo.UserBookings(ctx, userID, 20)
	require.NoError(t, err)
	assert.Equal(t, models.BookingRequested, bookings[0].Status)
}

func TestRoutineFlow(t *testing.T) {
	s := newTestServer(t)
	user, userID := s.signUp(t, "ada@example.com", false)
	ctx := context.Background()

	u := location(t, s.post("/routine/items", user, url.Values{"name": {""}}))
	assert.Equal(t, "Missing routine name", u.Query().Get("error"))

	location(t, s.post("/routine/items", user, url.Values{"name": {"Cleanser"}, "timeOfDay": {"night"}}))
	items, err := s.repo.ActiveRoutineItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	item := items[0].ID.String()

	for _, done := range []string{"true", "true", "false"} {
		location(t, s.post("/routine/toggle", user, url.Values{"routineItemId": {item}, "logDate": {"2026-10-14"}, "done": {done}}))
	}
	logs, err := s.repo.RoutineLogs(ctx, userID, items[0].ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.False(t, logs[0].Done)

	location(t, s.post("/routine/items/deactivate", user, url.Values{"routineItemId": {item}}))
	items, err = s.repo.ActiveRoutineItems(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
