// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	cartdom "m3dshop/internal/domain/cart"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
)

const (
	// sessionIdleTTL matches the session cookie lifetime; a session idle
	// longer than this has no cookie left to come back with.
	sessionIdleTTL = 7 * 24 * time.Hour
	sweepEvery     = 10 * time.Minute
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// CartUsecase is the session-scoped cart store. It is explicitly
// constructed at app start and passed down; no module-level state.
//
// Lifecycle per session id:
//   - exactly one read from the repository (hydrate), on first touch;
//     sessions idle past the cookie lifetime are evicted from memory and
//     hydrate again if they return;
//   - every dispatch runs the reducer and then serializes the full state back
//     to the repository;
//   - malformed persisted content was already discarded by the repository
//     (warn-logged there), so hydrate simply starts empty.
//
// Dispatches for one session are serialized; sessions sharing an id across
// processes are last-write-wins, with no merge beyond the startup read.
type CartUsecase struct {
	repo  cartdom.Repository
	clock Clock

	mu        sync.Mutex
	states    map[string]cartdom.State
	hydrated  map[string]bool
	touched   map[string]time.Time
	lastSweep time.Time
}

func NewCartUsecase(repo cartdom.Repository) *CartUsecase {
	return &CartUsecase{
		repo:     repo,
		clock:    systemClock{},
		states:   make(map[string]cartdom.State),
		hydrated: make(map[string]bool),
		touched:  make(map[string]time.Time),
	}
}

// touchLocked stamps the session's last activity and, at most once per
// sweepEvery, drops the in-memory mirrors of sessions idle past
// sessionIdleTTL. The persisted doc has its own TTL in storage; this keeps
// the process maps from growing one entry per session forever. An evicted
// session that does come back simply hydrates again. Caller holds mu.
func (u *CartUsecase) touchLocked(sid string) {
	now := u.clock.Now()
	u.touched[sid] = now
	if now.Sub(u.lastSweep) < sweepEvery {
		return
	}
	u.lastSweep = now
	for id, t := range u.touched {
		if now.Sub(t) > sessionIdleTTL {
			delete(u.states, id)
			delete(u.hydrated, id)
			delete(u.touched, id)
		}
	}
}

// hydrateLocked performs the one-time startup read for a session.
// Caller holds mu.
func (u *CartUsecase) hydrateLocked(ctx context.Context, sid string) (cartdom.State, error) {
	if u.hydrated[sid] {
		return u.states[sid], nil
	}

	persisted, err := u.repo.Load(ctx, sid)
	if err != nil {
		// Storage trouble is not a reason to lose the session: log and
		// start empty, same as a malformed doc.
		log.Printf("[cart_usecase] WARN: hydrate load failed sessionId=%q err=%v", sid, err)
		persisted = nil
	}

	s, aerr := cartdom.Apply(nil, cartdom.Action{Type: cartdom.ActionHydrate, Items: persisted})
	if aerr != nil {
		return nil, aerr
	}
	u.states[sid] = s
	u.hydrated[sid] = true
	return s, nil
}

// Dispatch runs one reducer action for the session and persists the result.
// An unhandled action type comes back as cart.ErrUnhandledAction: a
// programming-error guard the handler maps to a 500.
func (u *CartUsecase) Dispatch(ctx context.Context, sessionID string, a cartdom.Action) (cartdom.State, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, ErrCartInvalidArgument
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	u.touchLocked(sid)
	cur, err := u.hydrateLocked(ctx, sid)
	if err != nil {
		return nil, err
	}

	next, err := cartdom.Apply(cur, a)
	if err != nil {
		return nil, err
	}
	u.states[sid] = next

	if err := u.repo.Save(ctx, sid, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Get returns the current state plus the derived total. Hydrates on first
// touch; never mutates.
func (u *CartUsecase) Get(ctx context.Context, sessionID string) (cartdom.State, int64, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, 0, ErrCartInvalidArgument
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	u.touchLocked(sid)
	s, err := u.hydrateLocked(ctx, sid)
	if err != nil {
		return nil, 0, err
	}
	return s, cartdom.Total(s), nil
}

// AddItem dispatches addItem (always +1; inserts pin count to 1).
func (u *CartUsecase) AddItem(ctx context.Context, sessionID string, item cartdom.Item) (cartdom.State, error) {
	if item.Product.ID == 0 {
		return nil, ErrCartInvalidArgument
	}
	return u.Dispatch(ctx, sessionID, cartdom.Action{Type: cartdom.ActionAddItem, Item: item})
}

// RemoveItem dispatches removeItem (decrement or delete).
func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID string, item cartdom.Item) (cartdom.State, error) {
	if item.Product.ID == 0 {
		return nil, ErrCartInvalidArgument
	}
	return u.Dispatch(ctx, sessionID, cartdom.Action{Type: cartdom.ActionRemoveItem, Item: item})
}

// Clear dispatches clearCart.
func (u *CartUsecase) Clear(ctx context.Context, sessionID string) (cartdom.State, error) {
	return u.Dispatch(ctx, sessionID, cartdom.Action{Type: cartdom.ActionClearCart})
}
