package mcpservice

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ggoodman/fortune-compass/internal/logctx"
	"github.com/invopop/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolEntry is a tool descriptor bound to a typed handler.
type ToolEntry struct {
	desc mcp.Tool
	add  func(srv *mcp.Server, desc *mcp.Tool)
}

func (t *ToolEntry) Kind() Kind  { return KindTool }
func (t *ToolEntry) Key() string { return t.desc.Name }

func (t *ToolEntry) bind(srv *mcp.Server) {
	desc := t.desc
	t.add(srv, &desc)
}

// Descriptor returns a copy of the tool descriptor, including the reflected
// input and output schemas.
func (t *ToolEntry) Descriptor() mcp.Tool { return t.desc }

// ToolOption configures NewTool behavior.
type ToolOption func(*toolConfig)

type toolConfig struct {
	title                     string
	description               string
	meta                      mcp.Meta
	allowAdditionalProperties bool // default false (strict)
}

// WithToolTitle sets the human-readable title shown by clients.
func WithToolTitle(title string) ToolOption {
	return func(c *toolConfig) { c.title = title }
}

// WithToolDescription sets the tool description used in listings.
func WithToolDescription(desc string) ToolOption {
	return func(c *toolConfig) { c.description = desc }
}

// WithToolMeta attaches _meta to the tool descriptor.
func WithToolMeta(meta mcp.Meta) ToolOption {
	return func(c *toolConfig) { c.meta = meta }
}

// WithToolAllowAdditionalProperties controls whether unknown input fields are
// allowed. When false (default), the generated schema sets
// additionalProperties=false and the SDK rejects unknown fields.
func WithToolAllowAdditionalProperties(allow bool) ToolOption {
	return func(c *toolConfig) { c.allowAdditionalProperties = allow }
}

// NewTool builds a tool entry from typed input In and output Out. Both
// schemas are reflected with invopop/jsonschema, so struct tags such as
// `jsonschema:"enum=a,enum=b,default=a"` are honored. Out must reflect to an
// object schema (a struct or a string-keyed map).
func NewTool[In, Out any](name string, fn mcp.ToolHandlerFor[In, Out], opts ...ToolOption) *ToolEntry {
	cfg := toolConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	desc := mcp.Tool{
		Name:         name,
		Title:        cfg.title,
		Description:  cfg.description,
		Meta:         cfg.meta,
		InputSchema:  mustReflectSchema[In](cfg.allowAdditionalProperties),
		OutputSchema: mustReflectSchema[Out](false),
	}

	handler := func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, Out, error) {
		ctx = logctx.WithToolCallData(ctx, &logctx.ToolCallData{ToolName: name})
		return fn(ctx, req, in)
	}

	return &ToolEntry{
		desc: desc,
		add: func(srv *mcp.Server, d *mcp.Tool) {
			mcp.AddTool(srv, d, handler)
		},
	}
}

// reflectSchema reflects a Go type into a JSON Schema document suitable for a
// tool descriptor. Definitions are inlined and the root is the struct itself.
func reflectSchema[T any](allowAdditional bool) (json.RawMessage, error) {
	r := &jsonschema.Reflector{
		DoNotReference:            true, // inline defs
		ExpandedStruct:            true, // put struct at root
		Anonymous:                 true, // no $id derived from the package path
		AllowAdditionalProperties: allowAdditional,
	}
	s := r.Reflect(new(T))
	if s == nil || s.Type != "object" {
		return nil, fmt.Errorf("schema for %T must be an object", *new(T))
	}
	s.Version = ""
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return b, nil
}

func mustReflectSchema[T any](allowAdditional bool) json.RawMessage {
	b, err := reflectSchema[T](allowAdditional)
	if err != nil {
		panic(fmt.Sprintf("mcpservice: %v", err))
	}
	return b
}

// TextResult is a small helper to build a single text block CallToolResult.
func TextResult(s string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: s}}}
}

// Errorf returns an error CallToolResult with a single text block and IsError=true.
func Errorf(format string, a ...any) *mcp.CallToolResult {
	msg := fmt.Sprintf(format, a...)
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: msg}}, IsError: true}
}
