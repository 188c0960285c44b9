package main // Entry point package

import (
	"log" // Logging library
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"    // Load .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/morozlab/holiday-visit-booking/internal/availability"
	"github.com/morozlab/holiday-visit-booking/internal/booking"
	"github.com/morozlab/holiday-visit-booking/internal/config"
	"github.com/morozlab/holiday-visit-booking/internal/handler"
	"github.com/morozlab/holiday-visit-booking/internal/middleware"
	"github.com/morozlab/holiday-visit-booking/internal/pricing"
	"github.com/morozlab/holiday-visit-booking/internal/queue"
	"github.com/morozlab/holiday-visit-booking/internal/repository"
	"github.com/morozlab/holiday-visit-booking/internal/router"
	queue_publisher "github.com/morozlab/holiday-visit-booking/internal/service"
	"github.com/morozlab/holiday-visit-booking/internal/session"
	"github.com/morozlab/holiday-visit-booking/internal/support"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments export the vars

	cfg := config.Load() // Load environment config

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	// File-backed stores.
	orders, err := repository.NewOrderRepo(filepath.Join(cfg.DataDir, "orders.xlsx"))
	if err != nil {
		log.Fatalf("open order store: %v", err)
	}
	pending, err := repository.NewPendingOrderRepo(filepath.Join(cfg.DataDir, "pending_orders.json"))
	if err != nil {
		log.Fatalf("open pending store: %v", err)
	}
	supportRepo, err := repository.NewSupportRepo(cfg.DataDir, cfg.Operators)
	if err != nil {
		log.Fatalf("open support store: %v", err)
	}

	// Engines and services.
	rates := pricing.NewEngine()
	avail := availability.NewEngine(orders, rates)
	svc := booking.NewService(orders, pending, queue_publisher.PublishOrderConfirmed)

	// Sessions live in Redis when it is reachable, in memory otherwise.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; sessions held in memory, rate limit and cache disabled")
	}
	sessions := session.NewStore(rdb)
	machine := session.NewMachine(avail, rates, svc, supportRepo)
	relay := support.NewRouter(supportRepo)

	e := echo.New() // Create Echo instance

	// The limiter guards the /api groups; the cache is applied per-route
	// to the public quote endpoints only, so authenticated responses are
	// never stored.
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	files := &handler.FilesHandler{Orders: orders, WebDir: cfg.WebDir}
	ratesH := handler.NewRatesHandler(avail, rates)
	bookingH := &handler.BookingHandler{Booking: svc}
	chatH := &handler.ChatHandler{Sessions: sessions, Machine: machine}
	supportH := &handler.SupportHandler{
		Router:      relay,
		Repo:        supportRepo,
		Secret:      cfg.OperatorSecret,
		TokenTTLMin: cfg.OperatorTTLMin,
	}

	router.RegisterRoutes(e) // Register application routes
	router.RegisterSite(e, files, ratesH, bookingH, chatH, limiter, cache)
	router.RegisterSupport(e, supportH, files, cfg.OperatorSecret, limiter)

	// Background feed of confirmed orders into logs/orders.log.
	go queue.StartOrderConsumer()

	// Optional janitor: purge pending orders abandoned before payment.
	if cfg.PendingOrderTTL > 0 {
		go func() {
			ticker := time.NewTicker(cfg.PendingOrderTTL / 2)
			defer ticker.Stop()
			for range ticker.C {
				n, err := pending.DeleteOlderThan(cfg.PendingOrderTTL, time.Now())
				if err != nil {
					log.Printf("janitor: purge pending orders: %v", err)
					continue
				}
				if n > 0 {
					log.Printf("janitor: purged %d abandoned pending orders", n)
				}
			}
		}()
	}

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
