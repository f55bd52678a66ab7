package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/navetta/shuttle-booking/internal/config"
	"github.com/navetta/shuttle-booking/internal/handler"
	"github.com/navetta/shuttle-booking/internal/queue"
	"github.com/navetta/shuttle-booking/internal/router"
	"github.com/navetta/shuttle-booking/internal/service"
	"github.com/navetta/shuttle-booking/internal/session"
	"github.com/navetta/shuttle-booking/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env wins

	cfg := config.Load()

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	if cfg.SeedDemoData {
		if err := store.SeedDemo(context.Background(), st); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
		log.Printf("demo fixtures installed")
	}

	var sessions session.Store
	if client := config.NewRedisClient(cfg); client != nil {
		sessions = session.NewRedis(client)
		log.Printf("sessions: redis at %s", cfg.RedisAddr)
	} else {
		sessions = session.NewMemory()
		log.Printf("sessions: in-memory (logins do not survive restarts)")
	}

	pub := queue.NewPublisher(cfg.RabbitURL)
	if pub == nil {
		log.Printf("broker: disabled, lifecycle events will not be published")
	}

	svc := service.New(st, pub)
	ttl := time.Duration(cfg.SessionTTLMin) * time.Minute

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Handlers{
		Auth:     handler.NewAuthHandler(svc, sessions, cfg.JWTSecret, ttl),
		Events:   handler.NewEventHandler(svc),
		Bookings: handler.NewBookingHandler(svc),
		Users:    handler.NewUserHandler(svc),
		Scan:     handler.NewScanHandler(svc),
	}, cfg.JWTSecret, sessions)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s store=%s)", addr, cfg.Env, cfg.StoreBackend)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// openStore picks the record-store backend from config.
func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "mysql":
		m, err := store.OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return m, nil
	case "memory":
		return store.NewMemory(), nil
	default:
		return store.NewFile(cfg.DataDir)
	}
}
