// internal/adapters/out/memory/cart_repository_mem.go
package memory

import (
	"context"
	"log"
	"sync"

	cartdom "m3dshop/internal/domain/cart"
)

// CartRepositoryMem is the local fallback cart store, used when Firestore is
// not configured and by tests. It stores the same serialized document the
// Firestore repository would, so parse-tolerance behaves identically.
type CartRepositoryMem struct {
	mu   sync.RWMutex
	docs map[string]string
}

func NewCartRepositoryMem() *CartRepositoryMem {
	return &CartRepositoryMem{docs: make(map[string]string)}
}

func (r *CartRepositoryMem) Load(_ context.Context, sessionID string) (cartdom.State, error) {
	r.mu.RLock()
	raw, ok := r.docs[sessionID]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	s, ok := cartdom.UnmarshalDoc(raw)
	if !ok {
		log.Printf("[cart_repository_mem] WARN: discarding malformed cart doc sessionId=%q", sessionID)
		return nil, nil
	}
	return s, nil
}

func (r *CartRepositoryMem) Save(_ context.Context, sessionID string, s cartdom.State) error {
	raw, err := cartdom.MarshalDoc(s)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.docs[sessionID] = raw
	r.mu.Unlock()
	return nil
}

func (r *CartRepositoryMem) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.docs, sessionID)
	r.mu.Unlock()
	return nil
}

// SeedRaw injects a raw document. Test hook for malformed-payload recovery.
func (r *CartRepositoryMem) SeedRaw(sessionID, raw string) {
	r.mu.Lock()
	r.docs[sessionID] = raw
	r.mu.Unlock()
}

// Raw returns the stored serialized document. Test hook.
func (r *CartRepositoryMem) Raw(sessionID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	raw, ok := r.docs[sessionID]
	return raw, ok
}
