package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fazeelrazzaq/oasis-borrow/internal/domain/entities"
)

// AssetHandler serves the static asset-page catalog.
type AssetHandler struct{}

func NewAssetHandler() *AssetHandler {
	return &AssetHandler{}
}

// ListAssets handles GET /api/v1/assets
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, entities.AssetPages)
}

// GetAsset handles GET /api/v1/assets/{slug}
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	slug := strings.ToLower(chi.URLParam(r, "slug"))
	page, ok := entities.AssetPageBySlug(slug)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_asset", "no asset page for slug "+slug)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
