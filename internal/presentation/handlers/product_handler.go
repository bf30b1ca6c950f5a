package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/entities"
	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/services"
	"github.com/fazeelrazzaq/oasis-borrow/internal/infrastructure/cache"
)

// ProductHandler serves the per-product card listings.
type ProductHandler struct {
	catalog  *services.ProductCatalog
	snapshot *services.CardSnapshot
	cache    cache.Cache
	network  string
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewProductHandler(catalog *services.ProductCatalog, snapshot *services.CardSnapshot, cacheClient cache.Cache, network string, cacheTTL time.Duration, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog:  catalog,
		snapshot: snapshot,
		cache:    cacheClient,
		network:  network,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// ProductCardsResponse represents a product page card listing.
type ProductCardsResponse struct {
	Product   string                     `json:"product"`
	Filter    string                     `json:"filter"`
	UpdatedAt string                     `json:"updatedAt"`
	Cards     []entities.ProductCardData `json:"cards"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// GetProductCards handles GET /api/v1/products/{product}
func (h *ProductHandler) GetProductCards(w http.ResponseWriter, r *http.Request) {
	product := services.ProductType(chi.URLParam(r, "product"))
	switch product {
	case services.ProductBorrow, services.ProductMultiply, services.ProductEarn:
	default:
		writeError(w, http.StatusNotFound, "unknown_product", "product must be borrow, multiply, or earn")
		return
	}

	cardsFilter := services.FilterFeatured
	if fragment := r.URL.Query().Get("filter"); fragment != "" {
		filter, ok := h.catalog.MapURLFragmentToFilter(fragment)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown_filter", "no filter matches the requested fragment")
			return
		}
		cardsFilter = filter.Name
	}

	cacheKey := cache.CardsCacheKey(h.network, string(product), cardsFilter)
	if cached, err := h.cache.GetCards(r.Context(), cacheKey); err == nil && cached != nil {
		writeJSON(w, http.StatusOK, ProductCardsResponse{
			Product:   string(product),
			Filter:    cardsFilter,
			UpdatedAt: time.Now().UTC().Format(time.RFC3339),
			Cards:     cached,
		})
		return
	}

	latest, ready := h.snapshot.Latest()
	if !ready {
		writeError(w, http.StatusServiceUnavailable, "warming_up", "card data is not available yet")
		return
	}

	var selected []entities.IlkTokenMap
	switch product {
	case services.ProductBorrow:
		selected = h.catalog.BorrowPageCards(entities.IlkToEntryToken, cardsFilter)
	case services.ProductMultiply:
		selected = h.catalog.MultiplyPageCards(entities.IlkToEntryToken, cardsFilter)
	case services.ProductEarn:
		selected = h.catalog.EarnPageCards(entities.IlkToEntryToken)
	}

	cards := make([]entities.ProductCardData, 0, len(selected))
	for _, item := range selected {
		for _, card := range latest {
			if card.Ilk == item.Ilk {
				cards = append(cards, card)
				break
			}
		}
	}

	if err := h.cache.SetCards(r.Context(), cacheKey, cards, h.cacheTTL); err != nil {
		h.logger.Warn("failed to cache cards", "key", cacheKey, "error", err)
	}

	writeJSON(w, http.StatusOK, ProductCardsResponse{
		Product:   string(product),
		Filter:    cardsFilter,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		Cards:     cards,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: message,
	})
}
