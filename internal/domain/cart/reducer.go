// internal/domain/cart/reducer.go
package cart

import "fmt"

// ActionType enumerates the reducer actions. Payloads are tagged variants
// validated at the boundary; there is no any-typed dispatch.
type ActionType string

const (
	ActionAddItem    ActionType = "addItem"
	ActionRemoveItem ActionType = "removeItem"
	ActionClearCart  ActionType = "clearCart"
	ActionHydrate    ActionType = "hydrate"
)

// Action is one cart mutation. Item is the payload for addItem/removeItem,
// Items for hydrate. clearCart carries nothing.
type Action struct {
	Type  ActionType
	Item  Item
	Items State
}

// Apply is the cart reducer. It never mutates the input state.
//
// addItem: normalizes, then increments the existing entry by exactly 1 per
// call, or inserts the item with count pinned to 1. The count carried in the
// action payload is ignored on both branches; the "not found" branch pinning
// to 1 instead of the requested count is intentional and kept as-is.
//
// removeItem: normalizes, then decrements, or deletes the entry when its
// count is 1. An unknown product id is a no-op that still returns the
// normalized (deduplicated) state; that side effect is observable and kept.
func Apply(s State, a Action) (State, error) {
	switch a.Type {
	case ActionAddItem:
		next := Normalize(s)
		for i := range next {
			if next[i].Product.ID == a.Item.Product.ID {
				next[i].Count++
				return next, nil
			}
		}
		it := a.Item
		it.Count = 1
		return append(next, it), nil

	case ActionRemoveItem:
		next := Normalize(s)
		for i := range next {
			if next[i].Product.ID != a.Item.Product.ID {
				continue
			}
			if next[i].Count > 1 {
				next[i].Count--
				return next, nil
			}
			return append(next[:i:i], next[i+1:]...), nil
		}
		return next, nil

	case ActionClearCart:
		return State{}, nil

	case ActionHydrate:
		return Normalize(a.Items), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnhandledAction, string(a.Type))
	}
}
