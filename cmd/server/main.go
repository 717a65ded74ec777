package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/beauty_portal/internal/config"
	"github.com/Skotchmaster/beauty_portal/internal/db"
	"github.com/Skotchmaster/beauty_portal/internal/events"
	"github.com/Skotchmaster/beauty_portal/internal/httpserver"
	"github.com/Skotchmaster/beauty_portal/internal/logging"
	"github.com/Skotchmaster/beauty_portal/internal/metrics"
	authmw "github.com/Skotchmaster/beauty_portal/internal/middleware/auth"
	"github.com/Skotchmaster/beauty_portal/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/beauty_portal/internal/middleware/logging"
	"github.com/Skotchmaster/beauty_portal/internal/middleware/ratelimit"
	"github.com/Skotchmaster/beauty_portal/internal/repo"
	"github.com/Skotchmaster/beauty_portal/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	renderer, err := httpserver.NewRenderer(cfg.Location)
	if err != nil {
		logger.Error("templates_error", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.IPExtractor = ratelimit.ClientIP(cfg.TrustProxy)
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(
		middleware.RequestID(),
		metrics.Middleware(),
		loggingmw.RequestLogger(logger),
		middleware.Recover(),
	)

	var (
		gdb       *gorm.DB
		publisher events.Publisher = events.Nop{}
	)
	if !cfg.Configured() {
		logger.Warn("setup_mode", "missing", cfg.Missing())
		httpserver.RegisterSetup(e, cfg.Missing())
	} else {
		gdb, publisher, err = wire(e, cfg)
		if err != nil {
			logger.Error("startup_error", "error", err)
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server_start", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	go func() {
		<-quit
		logger.Warn("force_exit")
		os.Exit(1)
	}()

	logger.Info("shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if gdb != nil {
		if err := db.Close(gdb); err != nil {
			logger.Error("db_close_error", "error", err)
		}
	}
	if err := publisher.Close(); err != nil {
		logger.Error("events_close_error", "error", err)
	}

	logger.Info("shutdown_complete")
}

// wire opens the database and registers the portal routes.
func wire(e *echo.Echo, cfg config.Config) (*gorm.DB, events.Publisher, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx, gdb); err != nil {
		_ = db.Close(gdb)
		return nil, nil, err
	}

	publisher := events.New(cfg.KafkaBrokers, cfg.KafkaTopic)
	r := repo.New(gdb)

	authSvc := &service.AuthService{
		Repo:          r,
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		Events:        publisher,
	}
	catalog := &service.CatalogService{Repo: r, Events: publisher}
	bookings := &service.BookingService{Repo: r, Events: publisher, Location: cfg.Location}
	community := &service.CommunityService{Repo: r, Events: publisher}
	routine := &service.RoutineService{Repo: r, Events: publisher, Location: cfg.Location}
	store := &service.StoreService{Repo: r, Events: publisher}

	gate := &authmw.Gate{Auth: authSvc, Secure: cfg.CookieSecure}

	limiter := ratelimit.PerMinute(cfg.LoginRatePerMin)
	limiter.OnLimit = func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, authmw.SignInPath+"?error=Too+many+attempts")
	}

	csrfCfg := csrf.DefaultConfig()
	csrfCfg.Secure = cfg.CookieSecure
	csrfCfg.Scheme = cfg.PublicScheme
	e.Use(csrf.Middleware(csrfCfg))

	httpserver.Register(e, &httpserver.Deps{
		DB:           gdb,
		Gate:         gate,
		LoginLimiter: limiter,
		Home:         &httpserver.HomeHTTP{Catalog: catalog},
		Auth:         &httpserver.AuthHTTP{Svc: authSvc, Gate: gate},
		Booking:      &httpserver.BookingHTTP{Svc: bookings, Catalog: catalog},
		Store:        &httpserver.StoreHTTP{Svc: store, Catalog: catalog},
		Community:    &httpserver.CommunityHTTP{Svc: community},
		Routine:      &httpserver.RoutineHTTP{Svc: routine},
		Admin: &httpserver.AdminHTTP{
			Admin:     &service.AdminService{Catalog: catalog, Bookings: bookings, Community: community, Store: store},
			Catalog:   catalog,
			Bookings:  bookings,
			Community: community,
			Store:     store,
		},
	})
	return gdb, publisher, nil
}
