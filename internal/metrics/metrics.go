package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the portal's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beauty_portal",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "beauty_portal",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	OrdersRequested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "beauty_portal",
			Subsystem: "store",
			Name:      "order_requests_total",
			Help:      "Order requests materialized from carts.",
		},
	)

	LikeToggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beauty_portal",
			Subsystem: "community",
			Name:      "like_toggles_total",
			Help:      "Like toggles by resulting state.",
		},
		[]string{"liked"},
	)

	BookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "beauty_portal",
			Subsystem: "booking",
			Name:      "bookings_created_total",
			Help:      "Bookings requested by customers.",
		},
	)

	SignInFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beauty_portal",
			Subsystem: "auth",
			Name:      "sign_in_failures_total",
			Help:      "Rejected sign-in attempts by reason.",
		},
		[]string{"reason"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		OrdersRequested,
		LikeToggles,
		BookingsCreated,
		SignInFailures,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency labelled by route pattern.
// It must wrap the request logger so errors are already rendered.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().URL.Path == "/metrics" {
				return next(c)
			}
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}
			method := c.Request().Method
			httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func LikeToggled(liked bool) {
	LikeToggles.WithLabelValues(strconv.FormatBool(liked)).Inc()
}
