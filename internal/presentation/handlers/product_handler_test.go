package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/entities"
	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/feed"
	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/services"
	"github.com/fazeelrazzaq/oasis-borrow/internal/infrastructure/cache"
	"github.com/fazeelrazzaq/oasis-borrow/internal/infrastructure/rates"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCards() []entities.ProductCardData {
	return []entities.ProductCardData{
		{Ilk: "ETH-A", Token: "ETH", LiquidityAvailable: big.NewInt(1000)},
		{Ilk: "ETH-B", Token: "ETH", LiquidityAvailable: big.NewInt(500)},
		{Ilk: "ETH-C", Token: "ETH", LiquidityAvailable: big.NewInt(200)},
		{Ilk: "USDT-A", Token: "USDT", LiquidityAvailable: big.NewInt(300)},
	}
}

func newTestRouter(t *testing.T, snapshot *services.CardSnapshot) *chi.Mux {
	t.Helper()
	registry := entities.NewTokenRegistry(entities.DefaultTokens)
	catalog := services.NewProductCatalog(registry, services.DefaultProductCardsConfig())
	handler := NewProductHandler(catalog, snapshot, cache.NewInMemoryCache(), "main", time.Minute, testLogger())

	r := chi.NewRouter()
	r.Get("/api/v1/products/{product}", handler.GetProductCards)
	return r
}

func readySnapshot(t *testing.T) *services.CardSnapshot {
	t.Helper()
	snapshot := services.NewCardSnapshot()
	// feed.Of completes after one emission, so Run returns promptly
	snapshot.Run(context.Background(), feed.Of(testCards()))
	return snapshot
}

func TestGetProductCards(t *testing.T) {
	router := newTestRouter(t, readySnapshot(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/borrow", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProductCardsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "borrow", resp.Product)
	assert.Equal(t, services.FilterFeatured, resp.Filter)
	assert.Len(t, resp.Cards, 4)
}

func TestGetProductCardsWithFilter(t *testing.T) {
	router := newTestRouter(t, readySnapshot(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/borrow?filter=usdt", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProductCardsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Cards, 1)
	assert.Equal(t, entities.Ilk("USDT-A"), resp.Cards[0].Ilk)
}

func TestGetProductCardsUnknownProduct(t *testing.T) {
	router := newTestRouter(t, readySnapshot(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/lending", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProductCardsUnknownFilter(t *testing.T) {
	router := newTestRouter(t, readySnapshot(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/borrow?filter=dogecoin", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProductCardsBeforeFirstEmission(t *testing.T) {
	router := newTestRouter(t, services.NewCardSnapshot())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/borrow", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type staticProvider struct {
	tickers map[string]float64
}

func (p staticProvider) Tickers(ctx context.Context) (map[string]float64, error) {
	return p.tickers, nil
}

func TestGetTickers(t *testing.T) {
	service := rates.NewTickerService(staticProvider{tickers: map[string]float64{"ETH": 2000, "USDT": 1}})
	handler := NewTickerHandler(service, cache.NewInMemoryCache(), "main", time.Minute, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tickers", nil)
	rec := httptest.NewRecorder()
	handler.GetTickers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TickersResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, float64(2000), resp.Tickers["ETH"])
	assert.Equal(t, float64(1), resp.Tickers["USDT"])
}

func TestGetAsset(t *testing.T) {
	handler := NewAssetHandler()
	r := chi.NewRouter()
	r.Get("/api/v1/assets/{slug}", handler.GetAsset)

	t.Run("known slug", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/assets/eth", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var page entities.AssetPage
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
		assert.Equal(t, "ETH", page.Symbol)
	})

	t.Run("unknown slug", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/assets/doge", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHealth(t *testing.T) {
	handler := NewHealthHandler("1.2.3", "main")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, "main", resp.Network)
}
