package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"menu-catalog/internal/config"
	"menu-catalog/internal/database"
	"menu-catalog/internal/handler"
	"menu-catalog/internal/middleware"
	"menu-catalog/internal/queue"
	"menu-catalog/internal/repository"
	"menu-catalog/internal/router"
	"menu-catalog/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	h := handler.NewCatalogHandler(
		repository.NewMenuRepo(db),
		repository.NewSubmenuRepo(db),
		repository.NewDishRepo(db),
		repository.NewCountsRepo(db),
		service.NewCatalogPublisher(cfg.RabbitURL),
	)

	e := echo.New()
	e.HideBanner = true

	// Rate limiting is a no-op when Redis is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterCatalog(e, h)

	// The event consumer only runs when a broker is configured.
	if cfg.RabbitURL != "" {
		go func() {
			if err := queue.StartCatalogConsumer(cfg.RabbitURL); err != nil {
				log.Printf("catalog consumer stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
