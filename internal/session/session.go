package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
)

// Registry maps opaque session identifiers to authenticated account IDs.
// It is an explicit injected object rather than ambient process state, so a
// deployment can swap it for a distributed store without touching callers.
// Sessions have no TTL; they live until End is called or the process exits.
type Registry struct {
	mu       sync.RWMutex
	accounts map[string]string
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{accounts: make(map[string]string)}
}

// Start binds a fresh unguessable identifier to the account and returns it.
func (r *Registry) Start(accountID string) (string, error) {
	id, err := randomHex(32)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	r.accounts[id] = accountID
	r.mu.Unlock()
	return id, nil
}

// Resolve returns the account bound to the session identifier, if any.
func (r *Registry) Resolve(id string) (string, bool) {
	r.mu.RLock()
	accountID, ok := r.accounts[id]
	r.mu.RUnlock()
	return accountID, ok
}

// End removes the session. Ending an absent session is not an error.
func (r *Registry) End(id string) {
	r.mu.Lock()
	delete(r.accounts, id)
	r.mu.Unlock()
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
