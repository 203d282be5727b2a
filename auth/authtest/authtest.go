// Package authtest provides in-memory authenticators for tests.
package authtest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ggoodman/fortune-compass/auth"
)

// Tokens is a test authenticator mapping opaque bearer tokens to user IDs.
// Tokens marked with DenyScope authenticate but fail the scope check.
type Tokens struct {
	mu     sync.RWMutex
	users  map[string]string
	denied map[string]bool
}

// NewTokens creates an authenticator accepting the given token -> user ID pairs.
func NewTokens(pairs map[string]string) *Tokens {
	t := &Tokens{users: make(map[string]string), denied: make(map[string]bool)}
	for tok, uid := range pairs {
		t.users[tok] = uid
	}
	return t
}

// DenyScope makes tok fail with auth.ErrInsufficientScope.
func (t *Tokens) DenyScope(tok string) {
	t.mu.Lock()
	t.denied[tok] = true
	t.mu.Unlock()
}

func (t *Tokens) CheckAuthentication(_ context.Context, tok string) (auth.UserInfo, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.denied[tok] {
		return nil, fmt.Errorf("%w: token %q lacks scope", auth.ErrInsufficientScope, tok)
	}
	uid, ok := t.users[tok]
	if !ok {
		return nil, fmt.Errorf("%w: unknown token", auth.ErrUnauthorized)
	}
	return userInfo{id: uid}, nil
}

type userInfo struct{ id string }

func (u userInfo) UserID() string { return u.id }

func (u userInfo) Claims(ref any) error {
	b, err := json.Marshal(map[string]string{"sub": u.id})
	if err != nil {
		return err
	}
	return json.Unmarshal(b, ref)
}
