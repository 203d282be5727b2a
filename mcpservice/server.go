package mcpservice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ggoodman/fortune-compass/internal/logctx"
	"github.com/ggoodman/fortune-compass/sessions"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const methodInitialize = "initialize"

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	log          *slog.Logger
	instructions string
}

// WithLogger sets the logger used for server events.
func WithLogger(log *slog.Logger) ServerOption {
	return func(c *serverConfig) { c.log = log }
}

// WithInstructions sets the instructions returned to clients during initialize.
func WithInstructions(instr string) ServerOption {
	return func(c *serverConfig) { c.instructions = instr }
}

// Server binds a Registry onto a single SDK server and hands out one
// streamable transport per session.
type Server struct {
	sdk *mcp.Server
	log *slog.Logger

	mu      sync.Mutex
	pending map[string]func() // session id -> initialization callback
}

// NewServer builds a Server exposing every entry of reg.
func NewServer(info *mcp.Implementation, reg *Registry, opts ...ServerOption) *Server {
	cfg := serverConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = slog.Default()
	}
	cfg.log = logctx.Wrap(cfg.log)

	s := &Server{
		log:     cfg.log,
		pending: make(map[string]func()),
	}
	s.sdk = mcp.NewServer(info, &mcp.ServerOptions{
		Instructions: cfg.instructions,
		Logger:       cfg.log.WithGroup("sdk"),
	})
	s.sdk.AddReceivingMiddleware(s.logMethods, s.confirmInitialize)

	if reg != nil {
		for _, e := range reg.Entries() {
			e.bind(s.sdk)
			s.log.Debug("registry.bind", slog.String("kind", e.Kind().String()), slog.String("key", e.Key()))
		}
	}
	return s
}

// SDK exposes the underlying SDK server.
func (s *Server) SDK() *mcp.Server { return s.sdk }

// NewTransport connects a fresh streamable transport for sessionID. The
// initialized callback runs once, when the session's initialize request has
// been handled successfully and before its response is written. Closing the
// returned transport drops the callback if it has not fired.
func (s *Server) NewTransport(ctx context.Context, sessionID string, initialized func()) (sessions.Transport, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("new transport: empty session id")
	}
	t := &mcp.StreamableServerTransport{SessionID: sessionID}

	s.mu.Lock()
	if _, exists := s.pending[sessionID]; exists {
		s.mu.Unlock()
		return nil, fmt.Errorf("new transport: %w", sessions.ErrSessionExists)
	}
	if initialized == nil {
		initialized = func() {}
	}
	s.pending[sessionID] = initialized
	s.mu.Unlock()

	ss, err := s.sdk.Connect(ctx, t, nil)
	if err != nil {
		s.takePending(sessionID)
		return nil, fmt.Errorf("connect session %s: %w", sessionID, err)
	}
	return &sessionTransport{StreamableServerTransport: t, srv: s, ss: ss}, nil
}

func (s *Server) takePending(sessionID string) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn := s.pending[sessionID]
	delete(s.pending, sessionID)
	return fn
}

func (s *Server) pendingLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Server) confirmInitialize(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		res, err := next(ctx, method, req)
		if err != nil || method != methodInitialize {
			return res, err
		}
		if fn := s.takePending(req.GetSession().ID()); fn != nil {
			fn()
		}
		return res, nil
	}
}

func (s *Server) logMethods(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		ctx = logctx.WithRPCMessage(ctx, &logctx.RPCMessage{Method: method, SessionID: req.GetSession().ID()})
		res, err := next(ctx, method, req)
		if err != nil {
			s.log.WarnContext(ctx, "rpc.handle.err", slog.String("err", err.Error()))
			return res, err
		}
		s.log.DebugContext(ctx, "rpc.handle.ok")
		return res, nil
	}
}

// sessionTransport ties the lifetime of an SDK session to its transport.
type sessionTransport struct {
	*mcp.StreamableServerTransport
	srv *Server
	ss  *mcp.ServerSession
}

func (t *sessionTransport) Close() error {
	t.srv.takePending(t.SessionID)
	return t.ss.Close()
}
