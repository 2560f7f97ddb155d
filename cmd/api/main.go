package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	"ideagate/adapters/heuristic"
	"ideagate/adapters/memory"
	"ideagate/adapters/postgres"
	redisstore "ideagate/adapters/redis"
	"ideagate/app"
	"ideagate/domain/scoring"
	"ideagate/internal/config"
	"ideagate/internal/resilience"
	"ideagate/ports"
	"ideagate/ui"
)

func main() {
	// Best-effort .env loading for local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	store, err := buildStore(cfg)
	if err != nil {
		log.Fatal("Failed to initialize rule store:", err)
	}

	breaker := resilience.New(cfg.Breaker.FailureThreshold, cfg.Breaker.HalfOpenAfter)
	service := app.NewEvaluationService(
		scoring.DefaultTable(),
		heuristic.NewClassifier(),
		breaker,
		store,
	)

	httpApp := ui.NewApp(ui.Config{Port: cfg.Server.Port}, service, store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() { serveErr <- httpApp.Start() }()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Fatal("Server failed:", err)
		}
	case <-ctx.Done():
		stop()
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpApp.Shutdown(shutdownCtx); err != nil {
			log.Fatal("Shutdown failed:", err)
		}
		log.Println("Server stopped")
	}
}

func buildStore(cfg *config.Config) (ports.RuleStore, error) {
	switch cfg.Store.Backend {
	case config.StorePostgres:
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		store := postgres.NewRuleStore(db)
		if err := store.(*postgres.RuleStoreImpl).Migrate(context.Background()); err != nil {
			return nil, err
		}
		return store, nil
	case config.StoreRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return redisstore.NewRuleStore(client), nil
	default:
		return memory.NewRuleStore(), nil
	}
}
