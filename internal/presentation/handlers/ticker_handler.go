package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fazeelrazzaq/oasis-borrow/internal/infrastructure/cache"
	"github.com/fazeelrazzaq/oasis-borrow/internal/infrastructure/rates"
)

// TickerHandler serves the aggregated USD ticker map.
type TickerHandler struct {
	service  *rates.TickerService
	cache    cache.Cache
	network  string
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewTickerHandler(service *rates.TickerService, cacheClient cache.Cache, network string, cacheTTL time.Duration, logger *slog.Logger) *TickerHandler {
	return &TickerHandler{
		service:  service,
		cache:    cacheClient,
		network:  network,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// TickersResponse represents the aggregated ticker response.
type TickersResponse struct {
	UpdatedAt string             `json:"updatedAt"`
	Tickers   map[string]float64 `json:"tickers"`
}

// GetTickers handles GET /api/v1/tickers
func (h *TickerHandler) GetTickers(w http.ResponseWriter, r *http.Request) {
	cacheKey := cache.TickersCacheKey(h.network)
	if cached, err := h.cache.GetTickers(r.Context(), cacheKey); err == nil && cached != nil {
		writeJSON(w, http.StatusOK, TickersResponse{
			UpdatedAt: time.Now().UTC().Format(time.RFC3339),
			Tickers:   cached,
		})
		return
	}

	tickers, err := h.service.TokenTickers(r.Context())
	if err != nil {
		h.logger.Error("ticker aggregation failed", "error", err)
		writeError(w, http.StatusBadGateway, "tickers_unavailable", err.Error())
		return
	}

	if err := h.cache.SetTickers(r.Context(), cacheKey, tickers, h.cacheTTL); err != nil {
		h.logger.Warn("failed to cache tickers", "key", cacheKey, "error", err)
	}

	writeJSON(w, http.StatusOK, TickersResponse{
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		Tickers:   tickers,
	})
}
