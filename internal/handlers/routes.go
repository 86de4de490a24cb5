package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// WebSocket
	if h.Hub != nil {
		r.Get("/ws", h.handleWS)
	}

	// Vehicle selection wizard
	r.Get("/api/wizard", h.withSession(h.handleWizardView))
	r.Post("/api/wizard/open", h.withSession(h.handleWizardOpen))
	r.Post("/api/wizard/brand", h.withSession(h.handleWizardBrand))
	r.Post("/api/wizard/model", h.withSession(h.handleWizardModel))
	r.Post("/api/wizard/fuel", h.withSession(h.handleWizardFuel))
	r.Post("/api/wizard/year", h.withSession(h.handleWizardYear))
	r.Post("/api/wizard/back", h.withSession(h.handleWizardBack))
	r.Post("/api/wizard/filter", h.withSession(h.handleWizardFilter))
	r.Post("/api/wizard/submit", h.withSession(h.handleWizardSubmit))

	// Cart
	r.Get("/api/cart", h.withSession(h.handleCartView))
	r.Post("/api/cart/items", h.withSession(h.handleCartAdd))
	r.Put("/api/cart/items/{package}", h.withSession(h.handleCartQuantity))
	r.Delete("/api/cart/items/{package}", h.withSession(h.handleCartRemove))
	r.Post("/api/cart/checkout", h.withSession(h.handleCartCheckout))

	// Checkout
	r.Get("/api/checkout", h.withSession(h.handleCheckoutView))
	r.Post("/api/checkout/send-code", h.withSession(h.handleSendCode))
	r.Post("/api/checkout/resend", h.withSession(h.handleResend))
	r.Post("/api/checkout/verify", h.withSession(h.handleVerify))
	r.Post("/api/checkout/order", h.withSession(h.handlePlaceOrder))

	// Catalog passthrough
	r.Get("/api/catalog/brands", h.handleBrands)
	r.Get("/api/catalog/fuel-icons", h.handleFuelIcons)
	r.Get("/api/catalog/packages", h.handlePackages)

	// Orders
	r.Get("/api/orders/{reference}/qr", h.handleOrderQR)

	return r
}
