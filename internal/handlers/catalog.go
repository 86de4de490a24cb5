package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
)

// handleBrands proxies the brand catalog
func (h *Handlers) handleBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.Catalog.FetchBrands(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, brands)
}

// handleFuelIcons proxies the fuel icon catalog
func (h *Handlers) handleFuelIcons(w http.ResponseWriter, r *http.Request) {
	icons, err := h.Catalog.FetchFuelIcons(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, icons)
}

// handlePackages proxies the service package catalog, filtered by category
func (h *Handlers) handlePackages(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	packages, err := h.Catalog.FetchPackages(r.Context(), category)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, packages)
}

// handleOrderQR serves a QR code image encoding the booking reference
func (h *Handlers) handleOrderQR(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if _, err := h.Sessions.GetOrder(reference); err != nil {
		respondError(w, NotFound("order not found"))
		return
	}

	png, err := qrcode.Encode(reference, qrcode.Medium, 256)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
