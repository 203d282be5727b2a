// Package sessions defines the session abstraction shared by the streaming
// HTTP router and the MCP service layer. A session binds an opaque identifier
// (sent by clients in the Mcp-Session-Id header) to exactly one Transport for
// the lifetime of the process.
//
// Layers & Roles
//
//	Router     -> decides reuse / create / reject for every request
//	Store      -> keyed registry of live sessions (get, put, contains)
//	Transport  -> per-session protocol exchange, owned by the MCP SDK
//
// # Store Interface
//
// Sessions are only ever added; there is no
// expiry or explicit invalidation, so a registered identifier stays valid
// until the process exits. Implementations must be safe for concurrent use
// because net/http serves requests on many goroutines.
//
// Implementations
//
//	memorystore : RWMutex-guarded map, the only implementation that can hold
//	              live transports (they own goroutines and open streams)
//
// Conformance tests for new implementations live in sessions/storetest.
//
// Example:
//
//	store := memorystore.New()
//	_ = store.Put(ctx, &sessions.Session{ID: id, Transport: t})
//	if sess, err := store.Get(ctx, id); err == nil {
//		sess.Transport.ServeHTTP(w, r)
//	}
package sessions
