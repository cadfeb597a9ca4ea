// internal/domain/cart/entity.go
package cart

import (
	"encoding/json"
	"errors"
)

var (
	ErrInvalidCart = errors.New("cart: invalid")

	// ErrUnhandledAction signals a programming defect (an action type the
	// reducer does not know). Handlers must answer 500, never retry.
	ErrUnhandledAction = errors.New("cart: unhandled action type")
)

// StorageKey is the durable-storage key the serialized cart lives under.
const StorageKey = "cart"

// ProductRef is the product snapshot carried inside a cart item.
// Price is in minor currency units (cents). Name/Description carry the
// Arabic default, NameEN/DescriptionEN the English locale.
type ProductRef struct {
	ID            int64  `json:"id"`
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	NameEN        string `json:"name_en,omitempty"`
	Description   string `json:"description,omitempty"`
	DescriptionEN string `json:"description_en,omitempty"`
	Price         int64  `json:"price"`
	Currency      string `json:"currency"`
	URL           string `json:"url,omitempty"`
}

// ItemImage is a display image attached to a cart item.
type ItemImage struct {
	Path            string `json:"path"`
	BlurPlaceholder string `json:"blurDataURL,omitempty"`
}

// Item represents one line of the cart. Identity is Product.ID.
type Item struct {
	Product ProductRef  `json:"product"`
	Count   int         `json:"count"`
	Images  []ItemImage `json:"images,omitempty"`
}

// State is the committed cart: an ordered sequence of items with at most
// one entry per product id (enforced by Normalize).
type State []Item

// Normalize merges duplicate product-id entries by summing counts and drops
// entries without a product id or with a non-positive count. First-seen
// order is preserved. Normalizing an already-normalized state yields an
// identical state.
func Normalize(items State) State {
	out := make(State, 0, len(items))
	idx := make(map[int64]int, len(items))

	for _, it := range items {
		if it.Product.ID == 0 || it.Count <= 0 {
			continue
		}
		if i, ok := idx[it.Product.ID]; ok {
			out[i].Count += it.Count
			continue
		}
		idx[it.Product.ID] = len(out)
		out = append(out, it)
	}
	return out
}

// Total is the derived cart total in minor units: sum of price * count.
// It is recomputed from the current state only; removed items contribute
// nothing (they are absent from the collection, not zeroed).
func Total(s State) int64 {
	var total int64
	for _, it := range s {
		total += it.Product.Price * int64(it.Count)
	}
	return total
}

// MarshalDoc serializes the state as the JSON array stored under StorageKey.
// An empty state serializes as "[]", never "null".
func MarshalDoc(s State) (string, error) {
	if s == nil {
		s = State{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnmarshalDoc parses a persisted cart document. Malformed or non-array
// content yields (nil, false): callers discard it and start empty (warn-log
// only, never fatal).
func UnmarshalDoc(raw string) (State, bool) {
	if raw == "" {
		return nil, false
	}
	var s State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, false
	}
	return s, true
}
