package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vodintech/caragecarcare/internal/logger"
	"github.com/vodintech/caragecarcare/internal/models"
	"github.com/vodintech/caragecarcare/internal/store"
	"github.com/vodintech/caragecarcare/pkg/catalog"
)

// Session bundles the per-tab state machines: one wizard, one cart, one
// checkout gate. The original UI re-derived these per screen; here every
// entry point shares the same instances.
type Session struct {
	ID       string
	Wizard   *Wizard
	Cart     *Cart
	Checkout *Checkout

	cancel   context.CancelFunc
	lastSeen time.Time
}

// SessionManager owns the live sessions and the placed-order registry
type SessionManager struct {
	log           logger.Logger
	store         store.SessionStore
	catalog       catalog.Client
	sender        CodeSender
	broadcaster   Broadcaster
	yearStep      bool
	countdownFrom int

	mu       sync.Mutex
	sessions map[string]*Session
	orders   map[string]*models.Order
}

// NewSessionManager creates a SessionManager
func NewSessionManager(log logger.Logger, sessionStore store.SessionStore, client catalog.Client, sender CodeSender, yearStep bool, countdownFrom int) *SessionManager {
	return &SessionManager{
		log:           log,
		store:         sessionStore,
		catalog:       client,
		sender:        sender,
		yearStep:      yearStep,
		countdownFrom: countdownFrom,
		sessions:      make(map[string]*Session),
		orders:        make(map[string]*models.Order),
	}
}

// SetBroadcaster wires the websocket hub into new and existing sessions
func (m *SessionManager) SetBroadcaster(b Broadcaster) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcaster = b
	for _, sess := range m.sessions {
		sess.Checkout.SetBroadcaster(b)
	}
}

// NewSessionID mints a fresh tab-scoped session identifier
func (m *SessionManager) NewSessionID() string {
	return uuid.NewString()
}

// Get returns the session for an ID, creating it on first use. Creation
// starts the checkout countdown goroutine, tied to the session's lifetime.
func (m *SessionManager) Get(sessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[sessionID]; ok {
		sess.lastSeen = time.Now()
		return sess
	}

	cart := NewCart(m.log, m.store, sessionID)
	checkout := NewCheckout(m.log, m.store, cart, m.sender, sessionID, m.countdownFrom)
	if m.broadcaster != nil {
		checkout.SetBroadcaster(m.broadcaster)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go checkout.StartCountdown(ctx)

	sess := &Session{
		ID:       sessionID,
		Wizard:   NewWizard(m.log, m.catalog, m.store, sessionID, m.yearStep),
		Cart:     cart,
		Checkout: checkout,
		cancel:   cancel,
		lastSeen: time.Now(),
	}
	m.sessions[sessionID] = sess

	m.log.Debug("Session created", "session", sessionID)
	return sess
}

// Lookup returns an existing session without creating one
func (m *SessionManager) Lookup(sessionID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionID]
	return sess, ok
}

// Evict tears a session down, stopping its countdown goroutine
func (m *SessionManager) Evict(sessionID string) {
	m.mu.Lock()
	sess, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	if ok {
		sess.cancel()
		sess.Wizard.FlushNotifications()
		m.log.Debug("Session evicted", "session", sessionID)
	}
}

// EvictIdle drops sessions not touched within age and returns how many went
func (m *SessionManager) EvictIdle(age time.Duration) int {
	cutoff := time.Now().Add(-age)

	m.mu.Lock()
	var stale []*Session
	for id, sess := range m.sessions {
		if sess.lastSeen.Before(cutoff) {
			stale = append(stale, sess)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, sess := range stale {
		sess.cancel()
	}
	return len(stale)
}

// Close tears down every session
func (m *SessionManager) Close() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, sess := range sessions {
		sess.cancel()
		sess.Wizard.FlushNotifications()
	}
}

// RegisterOrder records a placed order so its confirmation can be served
func (m *SessionManager) RegisterOrder(order *models.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.Reference] = order
}

// GetOrder looks a placed order up by its booking reference
func (m *SessionManager) GetOrder(reference string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[reference]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
