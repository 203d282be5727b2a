// Package streaminghttp routes MCP streamable HTTP requests to per-session
// transports. It mounts as a standard net/http handler serving POST and GET
// on a single path.
//
// Routing
//   - POST with a known Mcp-Session-Id: delegated to that session's transport.
//   - POST without Mcp-Session-Id carrying an initialize request: a new
//     session identifier is generated, a transport is created through the
//     TransportFactory and the request is delegated to it. The session is
//     registered in the sessions.Store only once the transport confirms the
//     handshake; otherwise the transport is closed.
//   - GET with a known Mcp-Session-Id: delegated to the session's transport
//     (server-to-client stream).
//   - Anything else: 400 with a small JSON body {"error": "..."}.
//
// Construction
//
//	srv := mcpservice.NewServer(compass.Implementation(), reg)
//	h, err := streaminghttp.New(ctx, memorystore.New(), srv.NewTransport,
//	    streaminghttp.WithLogger(logger),
//	)
//	if err != nil { log.Fatal(err) }
//	http.ListenAndServe(":8000", h)
//
// Authentication
//
// With WithAuthenticator every request must carry a bearer token. Missing
// credentials yield 401 with a bare Bearer challenge, a malformed header 400
// invalid_request, a rejected token 401 invalid_token and missing scope 403
// insufficient_scope. Sessions remember the user that created them and are
// invisible to other users.
package streaminghttp
