package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vodintech/caragecarcare/internal/errors"
	"github.com/vodintech/caragecarcare/internal/logger"
	"github.com/vodintech/caragecarcare/internal/models"
	"github.com/vodintech/caragecarcare/internal/store"
)

// Broadcaster pushes checkout state changes to the tab without polling
type Broadcaster interface {
	BroadcastCountdown(sessionID string, seconds int)
	BroadcastVerification(sessionID string, verified bool)
}

// Checkout is the phone-verification gate in front of order placement.
// Unverified(no code) -> Unverified(code sent, counting down) -> Verified.
// Order fields only become reachable once Verified.
type Checkout struct {
	log           logger.Logger
	store         store.SessionStore
	cart          *Cart
	sender        CodeSender
	broadcaster   Broadcaster
	sessionID     string
	countdownFrom int

	mu    sync.Mutex
	state models.VerificationState
}

// NewCheckout creates a checkout gate for one session
func NewCheckout(log logger.Logger, sessionStore store.SessionStore, cart *Cart, sender CodeSender, sessionID string, countdownFrom int) *Checkout {
	if countdownFrom <= 0 {
		countdownFrom = 30
	}
	return &Checkout{
		log:           log,
		store:         sessionStore,
		cart:          cart,
		sender:        sender,
		sessionID:     sessionID,
		countdownFrom: countdownFrom,
	}
}

// SetBroadcaster wires the websocket hub in after construction
func (c *Checkout) SetBroadcaster(b Broadcaster) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.broadcaster = b
}

// State returns a copy of the verification state
func (c *Checkout) State() models.VerificationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SendCode dispatches a verification code and starts the resend countdown.
// While the countdown is running another dispatch is refused; Resend takes
// over once it reaches zero. Once verified, no further code can be sent.
func (c *Checkout) SendCode(ctx context.Context, phone string) error {
	c.mu.Lock()
	if c.state.Verified {
		c.mu.Unlock()
		return ErrAlreadyVerified
	}
	if c.state.CodeSent && c.state.CountdownSeconds > 0 {
		c.mu.Unlock()
		return ErrCountdownActive
	}
	c.mu.Unlock()

	if phone == "" {
		return errors.MissingField("phone")
	}

	code, err := GenerateCode()
	if err != nil {
		return errors.Internal(err)
	}
	if err := c.sender.SendCode(ctx, phone, code); err != nil {
		// The sender is a collaborator stub; a failure here is recoverable
		c.log.Warn("Code dispatch failed", "session", c.sessionID, "error", err)
	}

	c.mu.Lock()
	c.state.Phone = phone
	c.state.CodeSent = true
	c.state.CountdownSeconds = c.countdownFrom
	c.state.LastError = ""
	seconds := c.state.CountdownSeconds
	b := c.broadcaster
	c.mu.Unlock()

	c.log.Info("Verification code sent", "session", c.sessionID, "phone", phone)
	if b != nil {
		b.BroadcastCountdown(c.sessionID, seconds)
	}
	return nil
}

// Resend re-dispatches the code to the same phone. Only valid once the
// countdown has run out.
func (c *Checkout) Resend(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Verified {
		c.mu.Unlock()
		return ErrAlreadyVerified
	}
	if !c.state.CodeSent {
		c.mu.Unlock()
		return ErrNoCodeSent
	}
	if c.state.CountdownSeconds > 0 {
		c.mu.Unlock()
		return ErrResendNotReady
	}
	phone := c.state.Phone
	c.mu.Unlock()

	return c.SendCode(ctx, phone)
}

// Tick advances the countdown by one second. It stops at zero, which is when
// Resend becomes callable.
func (c *Checkout) Tick() {
	c.mu.Lock()
	if !c.state.CodeSent || c.state.Verified || c.state.CountdownSeconds <= 0 {
		c.mu.Unlock()
		return
	}
	c.state.CountdownSeconds--
	seconds := c.state.CountdownSeconds
	b := c.broadcaster
	c.mu.Unlock()

	if b != nil {
		b.BroadcastCountdown(c.sessionID, seconds)
	}
}

// StartCountdown drives Tick once per second until ctx is cancelled.
// The owner must cancel ctx when the session goes away, otherwise the timer
// keeps firing against dead state.
func (c *Checkout) StartCountdown(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}

// VerifyCode checks the submitted code and flips the gate to Verified.
//
// The check is format-only: any 6-digit string passes, with no comparison
// against the code that was dispatched. That mirrors the current product
// behavior and real validation is explicitly out of scope; swap this for a
// provider check before taking real traffic.
func (c *Checkout) VerifyCode(code string) error {
	c.mu.Lock()
	if c.state.Verified {
		c.mu.Unlock()
		return nil
	}
	if !c.state.CodeSent {
		c.mu.Unlock()
		return ErrNoCodeSent
	}

	if !isSixDigits(code) {
		c.state.LastError = "invalid code format"
		c.mu.Unlock()
		return errors.Format("invalid code format")
	}

	c.state.Verified = true
	c.state.LastError = ""
	b := c.broadcaster
	c.mu.Unlock()

	c.log.Info("Phone verified", "session", c.sessionID)
	if b != nil {
		b.BroadcastVerification(c.sessionID, true)
	}
	return nil
}

// PlaceOrder assembles and completes the order. It requires the gate to be
// Verified, all order fields filled, and a non-empty cart; the first unmet
// condition is reported. On success the cart record leaves the store (the
// selection stays for reuse) and the in-memory cart is emptied.
func (c *Checkout) PlaceOrder(ctx context.Context, date, timeSlot, address string) (*models.Order, error) {
	c.mu.Lock()
	verified := c.state.Verified
	verification := c.state
	c.mu.Unlock()

	switch {
	case !verified:
		return nil, errors.Validation("phone is not verified")
	case date == "":
		return nil, errors.MissingField("date")
	case timeSlot == "":
		return nil, errors.MissingField("time")
	case address == "":
		return nil, errors.MissingField("address")
	}

	items := c.cart.Items()
	if len(items) == 0 {
		return nil, errors.Validation("cart is empty")
	}

	selection, err := c.store.GetSelection(ctx, c.sessionID)
	if err != nil && err != store.ErrNotFound {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to read selection")
	}

	order := &models.Order{
		Reference:    uuid.NewString(),
		Selection:    selection,
		Items:        items,
		Date:         date,
		Time:         timeSlot,
		Address:      address,
		Total:        c.cart.Total(),
		Verification: verification,
		PlacedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	if err := c.store.DeleteCart(ctx, c.sessionID); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to clear cart record")
	}
	c.cart.clear()

	c.log.Info("Order placed", "session", c.sessionID,
		"reference", order.Reference, "total", order.Total, "items", len(order.Items))
	return order, nil
}

func isSixDigits(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
