package main

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"zipdrop/internal/config"
	handlers "zipdrop/internal/http/handler"
	"zipdrop/internal/http/middleware"
	"zipdrop/internal/http/views"
	"zipdrop/internal/otel"
	"zipdrop/internal/service"
	"zipdrop/internal/session"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()
	shutdownTracing, err := otel.Init(ctx, time.Local)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}

	// Session store owns all per-visitor state: quota counters, premium flag, flashes
	sessions := session.NewManager(cfg.Cookie, cfg.Tiers.FreeDailyUploads)

	compressSvc := service.NewCompressService()
	checkoutSvc := service.NewCheckoutService(cfg.Stripe, cfg.BaseURL)

	app := fiber.New(fiber.Config{
		Views:        views.Engine(),
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())
	// Process-wide security headers, including the content security policy
	app.Use(helmet.New(helmet.Config{ContentSecurityPolicy: cfg.CSP}))
	if cfg.SessionSecret != "" {
		app.Use(encryptcookie.New(encryptcookie.Config{Key: cookieKey(cfg.SessionSecret)}))
	} else {
		log.Println(`{"level":"warn","msg":"SESSION_SECRET not set, session cookies are not encrypted"}`)
	}

	reg := prometheus.NewRegistry()
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, cfg, sessions, compressSvc, checkoutSvc)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Graceful shutdown: finish in-flight requests, then flush traces
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Printf("failed to shut down tracing: %v", err)
	}
}

// cookieKey derives the stable 32-byte base64 key encryptcookie expects from
// the configured session secret.
func cookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}
