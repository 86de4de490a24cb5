package handlers

import (
	"net/http"

	"github.com/vodintech/caragecarcare/internal/services"
	"github.com/vodintech/caragecarcare/internal/websocket"
	"github.com/vodintech/caragecarcare/pkg/catalog"
)

// SessionCookie names the tab-scoped session cookie
const SessionCookie = "carage_session"

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Sessions *services.SessionManager
	Catalog  catalog.Client
	Hub      *websocket.Hub
	Log      HTTPLogger
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// NoopHTTPLogger is a test logger that never enables HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// New creates a new Handlers instance with all dependencies
func New(sessions *services.SessionManager, client catalog.Client, hub *websocket.Hub, log HTTPLogger) *Handlers {
	return &Handlers{
		Sessions: sessions,
		Catalog:  client,
		Hub:      hub,
		Log:      log,
	}
}

// NewForTesting creates a Handlers instance without a websocket hub
func NewForTesting(sessions *services.SessionManager, client catalog.Client) *Handlers {
	return &Handlers{
		Sessions: sessions,
		Catalog:  client,
		Log:      NoopHTTPLogger{},
	}
}

// withSession resolves the session cookie, minting one on first contact, and
// passes the per-session state bundle to the wrapped handler.
func (h *Handlers) withSession(next func(w http.ResponseWriter, r *http.Request, sess *services.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := h.sessionID(w, r)
		next(w, r, h.Sessions.Get(id))
	}
}

// sessionID reads the session cookie or issues a fresh one
func (h *Handlers) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := h.Sessions.NewSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Session cookie on purpose: the store is tab-scoped, not durable
	})
	return id
}

// handleWS upgrades to a websocket bound to the caller's existing session,
// so a connection only ever receives pushes for its own tab. Connecting
// before any session state exists is refused rather than minting one.
func (h *Handlers) handleWS(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		respondError(w, BadRequest("session cookie is required"))
		return
	}
	if _, ok := h.Sessions.Lookup(cookie.Value); !ok {
		respondError(w, services.ErrSessionNotFound)
		return
	}
	h.Hub.ServeWs(w, r, cookie.Value)
}
