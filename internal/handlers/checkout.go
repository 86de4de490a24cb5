package handlers

import (
	"net/http"

	"github.com/vodintech/caragecarcare/internal/services"
)

func (h *Handlers) checkoutView(sess *services.Session) CheckoutView {
	state := sess.Checkout.State()
	return CheckoutView{
		Verification: state,
		OrderFields:  state.Verified,
		ResendReady:  state.CodeSent && !state.Verified && state.CountdownSeconds == 0,
	}
}

// handleCheckoutView returns the verification state for the checkout page
func (h *Handlers) handleCheckoutView(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	respondOK(w, h.checkoutView(sess))
}

// handleSendCode sends the verification code to the given phone number
func (h *Handlers) handleSendCode(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	var req SendCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := sess.Checkout.SendCode(r.Context(), req.Phone); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, h.checkoutView(sess))
}

// handleResend re-sends the code once the countdown has elapsed
func (h *Handlers) handleResend(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	if err := sess.Checkout.Resend(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, h.checkoutView(sess))
}

// handleVerify checks the submitted code and unlocks order placement
func (h *Handlers) handleVerify(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	var req VerifyCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := sess.Checkout.VerifyCode(req.Code); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, h.checkoutView(sess))
}

// handlePlaceOrder places the order once verification and booking details are
// complete. The persisted cart record is removed on success.
func (h *Handlers) handlePlaceOrder(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	var req PlaceOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	order, err := sess.Checkout.PlaceOrder(r.Context(), req.Date, req.Time, req.Address)
	if err != nil {
		respondError(w, err)
		return
	}

	h.Sessions.RegisterOrder(order)
	respondCreated(w, OrderResponse{Status: "placed", Order: order})
}
