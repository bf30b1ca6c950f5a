package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fazeelrazzaq/oasis-borrow/internal/config"
	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/entities"
	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/services"
	"github.com/fazeelrazzaq/oasis-borrow/internal/infrastructure/cache"
	"github.com/fazeelrazzaq/oasis-borrow/internal/infrastructure/ethereum"
	"github.com/fazeelrazzaq/oasis-borrow/internal/infrastructure/onchain"
	"github.com/fazeelrazzaq/oasis-borrow/internal/infrastructure/rates"
	"github.com/fazeelrazzaq/oasis-borrow/internal/presentation/handlers"
)

const (
	version = "0.1.0"
)

func main() {
	// Local development overrides, ignored when absent
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	networks := ethereum.DefaultNetworks(cfg.Network.InfuraProjectID, cfg.Network.EtherscanAPIKey)
	network, ok := networks.ByName(cfg.Network.Name)
	if !ok {
		logger.Error("unknown network", "name", cfg.Network.Name)
		os.Exit(1)
	}

	ethClient, err := ethereum.NewClient(network)
	if err != nil {
		logger.Error("failed to connect to Ethereum", "error", err)
		os.Exit(1)
	}
	defer ethClient.Close()
	logger.Info("connected to Ethereum", "network", network.Name, "chainId", ethClient.ChainID().String())

	registry := entities.NewTokenRegistry(entities.DefaultTokens)
	catalog := services.NewProductCatalog(registry, services.DefaultProductCardsConfig())

	reader, err := onchain.NewIlkReader(ethClient, network, logger)
	if err != nil {
		logger.Error("failed to initialize ilk reader", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Keep a live card snapshot for the HTTP surface
	visibleIlks := make([]entities.Ilk, 0, len(entities.IlkToEntryToken))
	for _, mapping := range entities.IlkToEntryToken {
		visibleIlks = append(visibleIlks, mapping.Ilk)
	}
	hydrator := services.NewCardHydrator(registry, logger)
	cardsFeed := hydrator.ProductCardsData(
		onchain.SupportedIlksFeed(network),
		reader.IlkDataFeed(cfg.Network.PollInterval),
		reader.OraclePriceFeed(cfg.Network.PollInterval),
		visibleIlks,
	)
	snapshot := services.NewCardSnapshot()
	go snapshot.Run(ctx, cardsFeed)

	gsuClient := rates.NewGSUClient(cfg.Rates.BaseURL, registry, logger)
	tickerService := rates.NewTickerService(gsuClient)

	var cacheClient cache.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("failed to connect to Redis, using in-memory cache", "error", err)
			cacheClient = cache.NewInMemoryCache()
		} else {
			cacheClient = redisCache
			logger.Info("connected to Redis", "addr", cfg.Redis.Addr)
		}
	} else {
		cacheClient = cache.NewInMemoryCache()
		logger.Info("using in-memory cache")
	}

	healthHandler := handlers.NewHealthHandler(version, network.Name)
	productHandler := handlers.NewProductHandler(catalog, snapshot, cacheClient, network.Name, cfg.Redis.TTL, logger)
	tickerHandler := handlers.NewTickerHandler(tickerService, cacheClient, network.Name, cfg.Redis.TTL, logger)
	assetHandler := handlers.NewAssetHandler()

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products/{product}", productHandler.GetProductCards)
		r.Get("/tickers", tickerHandler.GetTickers)
		r.Get("/assets", assetHandler.ListAssets)
		r.Get("/assets/{slug}", assetHandler.GetAsset)
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting API", "version", version, "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func loadConfig() (*config.AppConfig, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return config.Load(path)
	}
	return config.Default(), nil
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
