// Package mcpservice binds tools and resources onto the MCP SDK server and
// produces the per-session transports the streaming HTTP router dispatches to.
//
// Entries are collected in a Registry. Every entry is tagged with its Kind
// (tool or resource); names and URIs must be unique within a kind:
//
//	type EchoArgs struct {
//	    Message string `json:"message" jsonschema:"description=Text to echo"`
//	}
//	type EchoOut struct {
//	    Echo string `json:"echo"`
//	}
//
//	echo := mcpservice.NewTool("echo",
//	    func(ctx context.Context, _ *mcp.CallToolRequest, a EchoArgs) (*mcp.CallToolResult, EchoOut, error) {
//	        return mcpservice.TextResult("you said: " + a.Message), EchoOut{Echo: a.Message}, nil
//	    },
//	    mcpservice.WithToolDescription("Echo a message back to the caller"),
//	)
//	page := mcpservice.NewStaticResource(
//	    mcp.Resource{URI: "res://hello.txt", Name: "hello", MIMEType: "text/plain"},
//	    "hello",
//	)
//	reg, err := mcpservice.NewRegistry(echo, page)
//
//	srv := mcpservice.NewServer(&mcp.Implementation{Name: "example", Version: "1.0.0"}, reg)
//
// Input and output schemas are reflected with invopop/jsonschema, so enum and
// default constraints are declared in struct tags and enforced by the SDK
// before a handler runs.
//
// Server.NewTransport matches the router's transport factory. The callback it
// receives fires when the SDK has accepted the session's initialize request,
// which is the router's signal to register the session.
package mcpservice
