package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/beauty_portal/internal/metrics"
	authmw "github.com/Skotchmaster/beauty_portal/internal/middleware/auth"
	"github.com/Skotchmaster/beauty_portal/internal/middleware/ratelimit"
)

type Deps struct {
	DB           *gorm.DB
	Gate         *authmw.Gate
	LoginLimiter *ratelimit.Limiter

	Home      *HomeHTTP
	Auth      *AuthHTTP
	Booking   *BookingHTTP
	Store     *StoreHTTP
	Community *CommunityHTTP
	Routine   *RoutineHTTP
	Admin     *AdminHTTP
}

func registerProbes(e *echo.Echo, ready echo.HandlerFunc) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", ready)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}

func Register(e *echo.Echo, d *Deps) {
	registerProbes(e, func(c echo.Context) error {
		sqlDB, err := d.DB.DB()
		if err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
		}
		if err := sqlDB.PingContext(c.Request().Context()); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
		}
		return c.NoContent(http.StatusOK)
	})

	e.GET("/", d.Home.Home, d.Gate.OptionalUser)

	e.GET("/login", d.Auth.LoginPage)
	e.GET("/signup", d.Auth.SignupPage)
	signIn := []echo.MiddlewareFunc{}
	if d.LoginLimiter != nil {
		signIn = append(signIn, d.LoginLimiter.Middleware)
	}
	e.POST("/login", d.Auth.Login, signIn...)
	e.POST("/signup", d.Auth.Signup, signIn...)
	e.POST("/logout", d.Auth.Logout)

	app := e.Group("", d.Gate.RequireUser)

	app.GET("/booking", d.Booking.Page)
	app.POST("/booking", d.Booking.Create)

	app.GET("/store", d.Store.Page)
	app.POST("/store/cart", d.Store.AddToCart)
	app.POST("/store/cart/quantity", d.Store.UpdateQuantity)
	app.POST("/store/order", d.Store.RequestOrder)

	app.GET("/community", d.Community.Feed)
	app.GET("/community/:id", d.Community.Thread)
	app.POST("/community/posts", d.Community.CreatePost)
	app.POST("/community/like", d.Community.ToggleLike)
	app.POST("/community/comments", d.Community.CreateComment)

	app.GET("/routine", d.Routine.Page)
	app.POST("/routine/items", d.Routine.CreateItem)
	app.POST("/routine/items/deactivate", d.Routine.Deactivate)
	app.POST("/routine/toggle", d.Routine.Toggle)

	admin := e.Group("/admin", d.Gate.RequireAdmin)

	admin.GET("", d.Admin.Page)
	admin.POST("/services", d.Admin.CreateService())
	admin.POST("/services/active", d.Admin.ServiceActive())
	admin.POST("/services/price", d.Admin.ServicePrice())
	admin.POST("/products", d.Admin.CreateProduct())
	admin.POST("/products/active", d.Admin.ProductActive())
	admin.POST("/products/price", d.Admin.ProductPrice())
	admin.POST("/posts/delete", d.Admin.DeletePost)
	admin.POST("/bookings/status", d.Admin.BookingStatus)
	admin.POST("/orders/status", d.Admin.OrderStatus)
}

// RegisterSetup serves the setup instructions in place of the portal.
// Nothing here touches the database.
func RegisterSetup(e *echo.Echo, missing []string) {
	registerProbes(e, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "not configured")
	})
	setup := Setup(missing)
	e.GET("/", setup)
	e.Any("/*", setup)
}
