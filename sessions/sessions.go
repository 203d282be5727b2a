package sessions

import (
	"context"
	"errors"
	"net/http"
	"time"
)

var (
	// ErrSessionNotFound is returned by Store.Get for identifiers that were
	// never registered.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExists is returned by Store.Put when the identifier is already
	// bound to a transport. A session identifier maps to at most one transport.
	ErrSessionExists = errors.New("session already exists")
)

// Transport handles the protocol exchange for a single session. The router
// hands every request bearing the session's identifier to the same Transport.
type Transport interface {
	http.Handler

	// Close releases the transport and any protocol session attached to it.
	Close() error
}

// Session is a registered binding between an identifier and its transport.
type Session struct {
	// ID is the opaque identifier echoed by clients in Mcp-Session-Id.
	ID string
	// UserID is the authenticated principal that created the session. Empty
	// when the router runs without an authenticator.
	UserID string
	// Transport owns the protocol state for the session.
	Transport Transport
	// CreatedAt records when initialization was confirmed.
	CreatedAt time.Time
}

// Store is a keyed registry of live sessions.
type Store interface {
	// Get returns the session registered under id or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*Session, error)
	// Put registers sess under sess.ID. It returns ErrSessionExists if the
	// identifier is already bound.
	Put(ctx context.Context, sess *Session) error
	// Contains reports whether id is registered.
	Contains(ctx context.Context, id string) (bool, error)
}
