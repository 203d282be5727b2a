package mcpservice

import (
	"errors"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrDuplicateEntry is returned when a tool name or resource URI is
// registered twice.
var ErrDuplicateEntry = errors.New("duplicate registry entry")

// Kind tags the variant of a registry Entry.
type Kind int

const (
	KindTool Kind = iota + 1
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindTool:
		return "tool"
	case KindResource:
		return "resource"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Entry is a registrable tool or resource. The set of implementations is
// closed: use NewTool or NewStaticResource.
type Entry interface {
	Kind() Kind
	// Key is the tool name or resource URI. Keys are unique per Kind.
	Key() string

	bind(srv *mcp.Server)
}

// Registry collects the entries exposed by a Server.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	keys    map[registryKey]struct{}
}

type registryKey struct {
	kind Kind
	key  string
}

// NewRegistry returns a registry holding entries, or an error if any two of
// them collide.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{keys: make(map[registryKey]struct{})}
	for _, e := range entries {
		if err := r.Add(e); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers e. It fails with ErrDuplicateEntry if an entry of the same
// kind and key already exists.
func (r *Registry) Add(e Entry) error {
	if e == nil {
		return errors.New("nil registry entry")
	}
	if e.Key() == "" {
		return fmt.Errorf("%s entry has empty key", e.Kind())
	}
	k := registryKey{kind: e.Kind(), key: e.Key()}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.keys == nil {
		r.keys = make(map[registryKey]struct{})
	}
	if _, exists := r.keys[k]; exists {
		return fmt.Errorf("%w: %s %q", ErrDuplicateEntry, k.kind, k.key)
	}
	r.keys[k] = struct{}{}
	r.entries = append(r.entries, e)
	return nil
}

// Entries returns the registered entries in registration order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len reports the number of entries of kind k.
func (r *Registry) Len(k Kind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, e := range r.entries {
		if e.Kind() == k {
			n++
		}
	}
	return n
}
