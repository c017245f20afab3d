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

	"sicknote-hub/config"
	"sicknote-hub/internal/adapter/gateway"
	adapterhandler "sicknote-hub/internal/adapter/handler"
	infracache "sicknote-hub/internal/infrastructure/cache"
	"sicknote-hub/internal/infrastructure/store"
	infratoken "sicknote-hub/internal/infrastructure/token"
	"sicknote-hub/internal/usecase"
	appmiddleware "sicknote-hub/middleware"
	"sicknote-hub/utils/logger"
	"sicknote-hub/utils/otel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Handle healthcheck subcommand (for Docker healthcheck in distroless image)
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Initialize OpenTelemetry
	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	// Initialize structured logger
	logger.Init(otelCfg.Enabled)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "configuration loaded",
		"campus_api_url", cfg.CampusAPIURL,
		"port", cfg.Port,
		"request_timeout", cfg.RequestTimeout)

	// Infrastructure
	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		sessionPath, err = store.DefaultPath()
		if err != nil {
			slog.ErrorContext(ctx, "failed to resolve session path", "error", err)
			os.Exit(1)
		}
	}
	repo, err := store.NewFileRepository(sessionPath)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize session repository", "error", err)
		os.Exit(1)
	}

	sessions := store.NewSessionStore(repo, slog.Default())
	if err := sessions.Load(); err != nil {
		// Degraded to "no Identity"; the hub still starts.
		slog.WarnContext(ctx, "persisted session discarded", "error", err)
	}

	campusGateway := gateway.NewCampusGateway(cfg.CampusAPIURL, cfg.RequestTimeout)
	privacyCache := infracache.NewPrivacyCache(campusGateway, sessions, slog.Default())
	sessions.OnInvalidate(privacyCache.Invalidate)

	csrfGenerator := infratoken.NewHMACCSRFGenerator(cfg.CSRFSecret)

	// Usecases
	gateUC := usecase.NewEvaluateAccess(sessions, privacyCache, slog.Default())
	privileged := gateway.NewPrivilegedCaller(gateUC, sessions, campusGateway)

	loginUC := usecase.NewLogin(campusGateway, sessions, slog.Default())
	registerUC := usecase.NewRegister(campusGateway, loginUC, slog.Default())
	logoutUC := usecase.NewLogout(sessions, slog.Default())
	sessionUC := usecase.NewGetSession(sessions)
	getPrivacyUC := usecase.NewGetPrivacy(privacyCache)
	updatePrivacyUC := usecase.NewUpdatePrivacy(privileged, privacyCache, slog.Default())
	notifyUC := usecase.NewNotifyFriends(privileged, slog.Default())
	csrfUC := usecase.NewGenerateCSRF(sessions, csrfGenerator, slog.Default())

	// Handlers
	authHandler := adapterhandler.NewAuthHandler(loginUC, registerUC, logoutUC)
	sessionHandler := adapterhandler.NewSessionHandler(sessionUC)
	gateHandler := adapterhandler.NewGateHandler(gateUC)
	settingsHandler := adapterhandler.NewSettingsHandler(getPrivacyUC, updatePrivacyUC)
	notifyHandler := adapterhandler.NewNotifyHandler(notifyUC)
	csrfHandler := adapterhandler.NewCSRFHandler(csrfUC)
	healthHandler := adapterhandler.NewHealthHandler()

	// Setup Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Security middleware
	e.Use(appmiddleware.SecurityHeaders())

	// OpenTelemetry tracing
	if otelCfg.Enabled {
		e.Use(otelecho.Middleware(otelCfg.ServiceName))
	}

	// Request logging
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/v1/health"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			if v.Error == nil {
				slog.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				slog.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())

	// Rate limiters per endpoint group
	authRL := appmiddleware.NewRateLimiter(10.0/60.0, 3)   // 10 req/min
	readRL := appmiddleware.NewRateLimiter(120.0/60.0, 20) // 120 req/min
	writeRL := appmiddleware.NewRateLimiter(30.0/60.0, 5)  // 30 req/min

	v1 := e.Group("/v1")
	if cfg.ShellAuthSecret != "" {
		v1.Use(appmiddleware.ShellAuth(cfg.ShellAuthSecret))
	}

	csrfCheck := appmiddleware.CSRFCheck(sessions, csrfGenerator)

	v1.POST("/auth/login", authHandler.HandleLogin, authRL.Middleware())
	v1.POST("/auth/signup", authHandler.HandleSignup, authRL.Middleware())
	v1.POST("/auth/logout", authHandler.HandleLogout, writeRL.Middleware(), csrfCheck)
	v1.GET("/session", sessionHandler.Handle, readRL.Middleware())
	v1.GET("/gate/:resource", gateHandler.Handle, readRL.Middleware())
	v1.GET("/settings/privacy", settingsHandler.HandleGet, readRL.Middleware())
	v1.POST("/settings/privacy", settingsHandler.HandleUpdate, writeRL.Middleware(), csrfCheck)
	v1.POST("/notify", notifyHandler.Handle, writeRL.Middleware(), csrfCheck)
	v1.GET("/csrf", csrfHandler.Handle, readRL.Middleware())
	v1.GET("/health", healthHandler.Handle)

	// Start server with errgroup for graceful shutdown
	address := fmt.Sprintf(":%s", cfg.Port)
	slog.InfoContext(ctx, "starting sicknote-hub server", "address", address)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited properly")
}

// runHealthcheck performs a health check against the local server.
func runHealthcheck() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8787"
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/v1/health", port))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
