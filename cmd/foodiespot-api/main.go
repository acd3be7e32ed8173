// README: Entry point; loads config, wires modules, runs the HTTP server and the session sweeper.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"foodiespot/internal/ai"
	"foodiespot/internal/config"
	httptransport "foodiespot/internal/http"
	"foodiespot/internal/http/middleware"
	"foodiespot/internal/infra"
	"foodiespot/internal/metrics"
	"foodiespot/internal/modules/booking"
	"foodiespot/internal/modules/catalog"
	"foodiespot/internal/modules/dialogue"
	"foodiespot/internal/modules/extract"
	"foodiespot/internal/modules/intent"
	"foodiespot/internal/modules/session"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := infra.NewLogger(cfg.Env, cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("foodiespot stopped", zap.Error(err))
	}
	logger.Info("foodiespot stopped")
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	m := metrics.New(nil)

	var db *pgxpool.Pool
	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer pool.Close()
		db = pool
	}

	cat, err := loadCatalog(ctx, db, logger)
	if err != nil {
		return err
	}

	var registry booking.Registry = booking.NewMemoryStore()
	if db != nil {
		registry = booking.NewPostgresStore(db)
	}
	engine := booking.NewService(cat, registry, logger.Named("booking"))

	policy := session.EvictionPolicy{IdleTTL: cfg.Session.TTL}
	var repo session.Repository = session.NewMemoryRepository()
	if cfg.Redis.Addr != "" {
		client, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		defer client.Close()
		repo = session.NewRedisRepository(client, policy)
	}
	sessions := session.NewStore(repo)

	sweeper, err := session.NewSweeper(repo, policy, cfg.Session.Sweep, logger.Named("sweeper"))
	if err != nil {
		return fmt.Errorf("session sweeper: %w", err)
	}
	sweeper.OnSweep(m.SessionsSwept)

	classifier, closeClassifier, err := newClassifier(ctx, cfg, cat, logger)
	if err != nil {
		return err
	}
	defer closeClassifier()

	orch := dialogue.NewOrchestrator(
		sessions,
		classifier,
		extract.New(cat.Names()),
		engine,
		cat,
		m,
		logger.Named("dialogue"),
	)

	var verifier infra.TokenVerifier
	if cfg.AuthEnabled() {
		verifier, err = infra.NewFirebaseVerifier(ctx, cfg.Auth.ProjectID, cfg.Auth.CredentialsFile)
		if err != nil {
			return fmt.Errorf("firebase init: %w", err)
		}
	}

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Dialogue:    orch,
		Restaurants: cat,
		Bookings:    engine,
		Sessions:    sessions,
		Verifier:    verifier,
		Limiter:     middleware.NewRateLimiter(cfg.HTTP.RateLimitPerMin),
		Metrics:     m,
		Logger:      logger.Named("http"),
		Version:     version,
	})
	server := httptransport.NewServer(cfg.HTTP.Addr, router, logger)

	logger.Info("foodiespot starting",
		zap.String("addr", cfg.HTTP.Addr),
		zap.Int("restaurants", len(cat.ListAll())),
		zap.Bool("postgres", db != nil),
		zap.Bool("redis", cfg.Redis.Addr != ""),
		zap.String("intent_strategy", cfg.AI.Strategy),
		zap.Bool("auth", verifier != nil),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(gctx) })
	g.Go(func() error { return sweeper.Run(gctx) })
	return g.Wait()
}

// loadCatalog reads restaurants from Postgres when available, seeding an empty
// table first, and falls back to the built-in list otherwise.
func loadCatalog(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) (*catalog.Catalog, error) {
	if db == nil {
		return catalog.Default(), nil
	}
	if err := catalog.SeedPostgres(ctx, db); err != nil {
		return nil, err
	}
	rows, err := catalog.LoadFromPostgres(ctx, db)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded from postgres", zap.Int("restaurants", len(rows)))
	return catalog.New(rows)
}

func newClassifier(ctx context.Context, cfg config.Config, cat *catalog.Catalog, logger *zap.Logger) (intent.Classifier, func(), error) {
	rules := intent.NewRuleClassifier(intent.DefaultRules(cat.Names()))
	if cfg.AI.Strategy != config.StrategyGemini {
		return rules, func() {}, nil
	}
	provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		return nil, nil, err
	}
	return intent.NewLLMClassifier(provider, rules, logger.Named("intent")), provider.Close, nil
}
