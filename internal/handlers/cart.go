package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vodintech/caragecarcare/internal/services"
)

func (h *Handlers) cartView(sess *services.Session) CartView {
	return CartView{
		Items:    sess.Cart.Items(),
		Subtotal: sess.Cart.Subtotal(),
		Total:    sess.Cart.Total(),
	}
}

// handleCartView returns the current cart contents
func (h *Handlers) handleCartView(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	respondOK(w, h.cartView(sess))
}

// handleCartAdd adds a service package to the cart. Adding an already present
// package bumps its quantity instead of creating a second line.
func (h *Handlers) handleCartAdd(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	var req CartAddRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Package.Name == "" {
		respondError(w, BadRequest("package name is required"))
		return
	}

	sess.Cart.Add(req.Package)
	respondOK(w, h.cartView(sess))
}

// handleCartQuantity sets the quantity for one cart line
func (h *Handlers) handleCartQuantity(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	name := chi.URLParam(r, "package")
	var req CartQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := sess.Cart.SetQuantity(name, req.Quantity); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, h.cartView(sess))
}

// handleCartRemove removes a line from the cart entirely
func (h *Handlers) handleCartRemove(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	sess.Cart.Remove(chi.URLParam(r, "package"))
	respondOK(w, h.cartView(sess))
}

// handleCartCheckout persists the cart so it survives a reconnect, then hands
// the caller off to the checkout flow.
func (h *Handlers) handleCartCheckout(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	if sess.Cart.Len() == 0 {
		respondError(w, services.ErrCartEmpty)
		return
	}
	if err := sess.Cart.Persist(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, h.cartView(sess))
}
