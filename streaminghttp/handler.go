package streaminghttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/elnormous/contenttype"
	"github.com/felixge/httpsnoop"
	"github.com/ggoodman/fortune-compass/auth"
	"github.com/ggoodman/fortune-compass/internal/logctx"
	"github.com/ggoodman/fortune-compass/sessions"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
)

var (
	_ http.Handler = (*Handler)(nil)
)

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrMissingSession = errors.New("missing session")
)

var jsonMediaType = contenttype.NewMediaType("application/json")

const (
	mcpSessionIDHeader    = "Mcp-Session-Id"
	authorizationHeader   = "Authorization"
	wwwAuthenticateHeader = "WWW-Authenticate"

	// DefaultPath is the endpoint path used when WithPath is not supplied.
	DefaultPath = "/mcp"
	// DefaultMaxBodyBytes caps POST bodies when WithMaxBodyBytes is not supplied.
	DefaultMaxBodyBytes int64 = 4 << 20

	routeReuse  = "reuse"
	routeCreate = "create"
)

// TransportFactory creates the transport for a new session. The factory must
// arrange for initialized to be called once the protocol handshake on the
// transport has succeeded; until then the session is not registered.
type TransportFactory func(ctx context.Context, sessionID string, initialized func()) (sessions.Transport, error)

// writeJSONError emits the router's error body. Shape: {"error":"<reason>"}.
// Safe to call after some headers set but before status written.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", jsonMediaType.String())
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// Option configures the Handler.
type Option func(*newConfig)

type newConfig struct {
	logger       *slog.Logger
	path         string
	auth         auth.Authenticator
	realm        string
	newID        func() string
	maxBodyBytes int64
	debugHeaders bool
}

// WithLogger sets the slog logger used by the handler. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *newConfig) { c.logger = l }
}

// WithPath sets the endpoint path. Defaults to DefaultPath.
func WithPath(path string) Option {
	return func(c *newConfig) { c.path = path }
}

// WithAuthenticator requires a bearer token on every request. Sessions are
// bound to the user that created them.
func WithAuthenticator(a auth.Authenticator) Option {
	return func(c *newConfig) { c.auth = a }
}

// WithRealm sets the HTTP authentication realm advertised in WWW-Authenticate
// challenges. If empty (default), the realm attribute is omitted entirely per
// RFC 6750 (it is optional) keeping challenges concise.
func WithRealm(realm string) Option {
	return func(c *newConfig) { c.realm = strings.TrimSpace(realm) }
}

// WithSessionIDGenerator overrides the UUIDv4 session identifier generator.
func WithSessionIDGenerator(fn func() string) Option {
	return func(c *newConfig) { c.newID = fn }
}

// WithMaxBodyBytes caps the size of POST bodies. Non-positive values keep the default.
func WithMaxBodyBytes(n int64) Option {
	return func(c *newConfig) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// WithDebugHeaders logs every request's headers at debug level.
func WithDebugHeaders(enabled bool) Option {
	return func(c *newConfig) { c.debugHeaders = enabled }
}

// buildBearerChallenge builds a standardized Bearer challenge header value.
// Format:
//
//	Bearer realm="<realm>", error="...", error_description="..."
//
// Realm is omitted if empty.
func buildBearerChallenge(realm string, params map[string]string) string {
	pieces := make([]string, 0, 1+len(params))
	esc := func(v string) string { return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(v) }
	if realm != "" {
		pieces = append(pieces, fmt.Sprintf(`realm="%s"`, esc(realm)))
	}
	for _, k := range []string{"error", "error_description"} {
		if v, ok := params[k]; ok {
			pieces = append(pieces, fmt.Sprintf(`%s="%s"`, k, esc(v)))
		}
	}
	if len(pieces) == 0 {
		return "Bearer"
	}
	return "Bearer " + strings.Join(pieces, ", ")
}

// Handler routes streamable HTTP requests to per-session transports. It
// accepts POST and GET on a single path; the Mcp-Session-Id header selects
// the session.
type Handler struct {
	ctx     context.Context
	mux     *http.ServeMux
	log     *slog.Logger
	store   sessions.Store
	factory TransportFactory

	auth         auth.Authenticator
	realm        string
	newID        func() string
	maxBodyBytes int64
	debugHeaders bool
}

// New constructs a Handler. Transports created by the handler live until ctx
// is done (or the process exits), independent of the request that created
// them.
func New(ctx context.Context, store sessions.Store, factory TransportFactory, opts ...Option) (*Handler, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if factory == nil {
		return nil, fmt.Errorf("transport factory is required")
	}

	cfg := &newConfig{
		logger:       slog.Default(),
		path:         DefaultPath,
		newID:        uuid.NewString,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if !strings.HasPrefix(cfg.path, "/") {
		return nil, fmt.Errorf("path must start with '/', got %q", cfg.path)
	}

	h := &Handler{
		ctx:          ctx,
		log:          logctx.Wrap(cfg.logger),
		store:        store,
		factory:      factory,
		auth:         cfg.auth,
		realm:        cfg.realm,
		newID:        cfg.newID,
		maxBodyBytes: cfg.maxBodyBytes,
		debugHeaders: cfg.debugHeaders,
	}

	mux := http.NewServeMux()
	mux.HandleFunc(fmt.Sprintf("POST %s", cfg.path), h.handlePost)
	mux.HandleFunc(fmt.Sprintf("GET %s", cfg.path), h.handleGet)
	h.mux = mux
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := logctx.WithRequestData(r.Context(), &logctx.RequestData{
		RequestID:  uuid.NewString(),
		Method:     r.Method,
		UserAgent:  r.UserAgent(),
		RemoteAddr: r.RemoteAddr,
		Path:       r.URL.Path,
	})
	r = r.WithContext(ctx)

	if h.debugHeaders {
		attrs := make([]any, 0, len(r.Header))
		for k, v := range r.Header {
			if k == authorizationHeader {
				v = []string{"[redacted]"}
			}
			attrs = append(attrs, slog.String(k, strings.Join(v, ", ")))
		}
		h.log.DebugContext(ctx, "http.headers", slog.Group("headers", attrs...))
	}

	m := httpsnoop.CaptureMetrics(h.mux, w, r)
	h.log.InfoContext(ctx, "http.request",
		slog.Int("status", m.Code),
		slog.Duration("dur", m.Duration),
		slog.Int64("bytes", m.Written),
	)
}

// handlePost reuses the transport named by Mcp-Session-Id, or creates a new
// session when the header is absent and the body is an initialize request.
func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.checkAuthentication(ctx, r, w)
	if !ok {
		h.log.InfoContext(ctx, "auth.fail")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.WarnContext(ctx, "http.body.too_large", slog.Int64("limit", tooLarge.Limit))
			writeJSONError(w, http.StatusBadRequest, "request body too large")
			return
		}
		h.log.WarnContext(ctx, "http.body.read.fail", slog.String("err", err.Error()))
		writeJSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	if sessID := r.Header.Get(mcpSessionIDHeader); sessID != "" {
		sess, err := h.lookup(ctx, sessID, userID)
		if err != nil {
			h.log.InfoContext(ctx, "session.lookup.miss", slog.String("session_id", sessID), slog.String("err", err.Error()))
			writeJSONError(w, http.StatusBadRequest, "Invalid session")
			return
		}
		ctx = logctx.WithSessionData(ctx, &logctx.SessionData{SessionID: sess.ID, UserID: sess.UserID, Route: routeReuse})
		h.log.DebugContext(ctx, "session.route.ok")
		sess.Transport.ServeHTTP(w, r.WithContext(ctx))
		return
	}

	if !isInitializeRequest(r, body) {
		h.log.InfoContext(ctx, "session.route.reject", slog.String("err", "no session header and not an initialize request"))
		writeJSONError(w, http.StatusBadRequest, "Invalid session")
		return
	}

	h.createSession(ctx, w, r, userID)
}

func (h *Handler) createSession(ctx context.Context, w http.ResponseWriter, r *http.Request, userID string) {
	sessID := h.newID()
	ctx = logctx.WithSessionData(ctx, &logctx.SessionData{SessionID: sessID, UserID: userID, Route: routeCreate})

	var (
		tr        sessions.Transport
		confirmed atomic.Bool
	)
	initialized := func() {
		sess := &sessions.Session{ID: sessID, UserID: userID, Transport: tr, CreatedAt: time.Now()}
		if err := h.store.Put(ctx, sess); err != nil {
			h.log.ErrorContext(ctx, "session.register.fail", slog.String("err", err.Error()))
			return
		}
		confirmed.Store(true)
		h.log.InfoContext(ctx, "session.create.ok")
	}

	tr, err := h.factory(h.ctx, sessID, initialized)
	if err != nil {
		h.log.ErrorContext(ctx, "session.create.fail", slog.String("err", err.Error()))
		writeJSONError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	w.Header().Set(mcpSessionIDHeader, sessID)
	tr.ServeHTTP(w, r.WithContext(ctx))

	if !confirmed.Load() {
		h.log.WarnContext(ctx, "session.create.unconfirmed")
		if err := tr.Close(); err != nil {
			h.log.WarnContext(ctx, "transport.close.fail", slog.String("err", err.Error()))
		}
	}
}

// handleGet opens the server-to-client stream of an existing session. GET
// never creates a session.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.checkAuthentication(ctx, r, w)
	if !ok {
		h.log.InfoContext(ctx, "auth.fail")
		return
	}

	sessID := r.Header.Get(mcpSessionIDHeader)
	if sessID == "" {
		h.log.InfoContext(ctx, "session.route.reject", slog.String("err", ErrMissingSession.Error()))
		writeJSONError(w, http.StatusBadRequest, "Missing session")
		return
	}
	sess, err := h.lookup(ctx, sessID, userID)
	if err != nil {
		h.log.InfoContext(ctx, "session.lookup.miss", slog.String("session_id", sessID), slog.String("err", err.Error()))
		writeJSONError(w, http.StatusBadRequest, "Missing session")
		return
	}

	ctx = logctx.WithSessionData(ctx, &logctx.SessionData{SessionID: sess.ID, UserID: sess.UserID, Route: routeReuse})
	h.log.DebugContext(ctx, "session.stream.open")
	sess.Transport.ServeHTTP(w, r.WithContext(ctx))
}

// lookup resolves a session, treating sessions owned by another user as unknown.
func (h *Handler) lookup(ctx context.Context, sessID, userID string) (*sessions.Session, error) {
	sess, err := h.store.Get(ctx, sessID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, fmt.Errorf("%w: %q is not owned by the caller", ErrInvalidSession, sessID)
	}
	return sess, nil
}

// isInitializeRequest reports whether the body is a JSON-RPC initialize
// request carrying a protocol version.
func isInitializeRequest(r *http.Request, body []byte) bool {
	ctype, err := contenttype.GetMediaType(r)
	if err != nil || !ctype.Matches(jsonMediaType) {
		return false
	}
	msg, err := jsonrpc.DecodeMessage(body)
	if err != nil {
		return false
	}
	req, ok := msg.(*jsonrpc.Request)
	if !ok || req.Method != "initialize" || !req.ID.IsValid() {
		return false
	}
	var params struct {
		ProtocolVersion string `json:"protocolVersion"`
	}
	if len(req.Params) == 0 || json.Unmarshal(req.Params, &params) != nil {
		return false
	}
	return params.ProtocolVersion != ""
}

// checkAuthentication returns the caller's user ID. When no authenticator is
// configured every request is accepted with an empty user ID. On failure the
// response has already been written.
func (h *Handler) checkAuthentication(ctx context.Context, r *http.Request, w http.ResponseWriter) (string, bool) {
	if h.auth == nil {
		return "", true
	}

	authHeader := r.Header.Get(authorizationHeader)
	if authHeader == "" {
		// RFC 6750 §3.1: no error code when the request carries no credentials.
		h.log.InfoContext(ctx, "auth.check.missing", slog.String("err", "no authorization header"))
		w.Header().Add(wwwAuthenticateHeader, buildBearerChallenge(h.realm, nil))
		writeJSONError(w, http.StatusUnauthorized, "missing bearer token")
		return "", false
	}

	const bearerPrefix = "Bearer "
	tok := ""
	if len(authHeader) > len(bearerPrefix) && strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		tok = strings.TrimSpace(authHeader[len(bearerPrefix):])
	}
	if tok == "" {
		h.log.InfoContext(ctx, "auth.check.invalid", slog.String("err", "malformed bearer authorization header"))
		w.Header().Add(wwwAuthenticateHeader, buildBearerChallenge(h.realm, map[string]string{"error": "invalid_request", "error_description": "malformed bearer authorization header"}))
		writeJSONError(w, http.StatusBadRequest, "malformed bearer authorization header")
		return "", false
	}

	userInfo, err := h.auth.CheckAuthentication(ctx, tok)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			h.log.InfoContext(ctx, "auth.check.fail", slog.String("err", err.Error()))
			w.Header().Add(wwwAuthenticateHeader, buildBearerChallenge(h.realm, map[string]string{"error": "invalid_token", "error_description": "the access token is invalid"}))
			writeJSONError(w, http.StatusUnauthorized, "invalid token")
			return "", false
		}

		if errors.Is(err, auth.ErrInsufficientScope) {
			h.log.InfoContext(ctx, "auth.check.fail", slog.String("err", err.Error()))
			w.Header().Add(wwwAuthenticateHeader, buildBearerChallenge(h.realm, map[string]string{"error": "insufficient_scope", "error_description": "the access token lacks the required scope"}))
			writeJSONError(w, http.StatusForbidden, "insufficient scope")
			return "", false
		}

		h.log.ErrorContext(ctx, "auth.check.err", slog.String("err", err.Error()))
		writeJSONError(w, http.StatusInternalServerError, "authentication failed")
		return "", false
	}

	h.log.DebugContext(ctx, "auth.ok", slog.String("user_id", userInfo.UserID()))
	return userInfo.UserID(), true
}
