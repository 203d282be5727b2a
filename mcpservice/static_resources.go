package mcpservice

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ResourceEntry is a resource whose contents are fixed at construction.
type ResourceEntry struct {
	desc mcp.Resource
	text string
}

func (r *ResourceEntry) Kind() Kind  { return KindResource }
func (r *ResourceEntry) Key() string { return r.desc.URI }

func (r *ResourceEntry) bind(srv *mcp.Server) {
	desc := r.desc
	srv.AddResource(&desc, r.read)
}

// Descriptor returns a copy of the resource descriptor.
func (r *ResourceEntry) Descriptor() mcp.Resource { return r.desc }

// Text returns the resource contents.
func (r *ResourceEntry) Text() string { return r.text }

// NewStaticResource wraps immutable text contents. The descriptor's _meta is
// repeated on the returned contents so clients that only inspect the read
// result still see it.
func NewStaticResource(desc mcp.Resource, text string) *ResourceEntry {
	return &ResourceEntry{desc: desc, text: text}
}

func (r *ResourceEntry) read(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if req.Params.URI != r.desc.URI {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      r.desc.URI,
			MIMEType: r.desc.MIMEType,
			Text:     r.text,
			Meta:     r.desc.Meta,
		}},
	}, nil
}

// ReadStaticFile loads resource contents from disk. A missing or unreadable
// file is an error; callers are expected to treat it as fatal at startup.
func ReadStaticFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read static resource %q: %w", path, err)
	}
	return string(b), nil
}
