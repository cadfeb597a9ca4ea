// internal/domain/checkout/line_item.go
package checkout

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	cartdom "m3dshop/internal/domain/cart"
)

// MaxDescriptionLen caps the plain-text description sent to providers.
const MaxDescriptionLen = 500

// LineItem is the provider-facing record of one product for checkout.
// Wire shape matches the client request body (price_data / quantity).
type LineItem struct {
	PriceData          PriceData           `json:"price_data"`
	Quantity           int                 `json:"quantity"`
	AdjustableQuantity *AdjustableQuantity `json:"adjustable_quantity,omitempty"`
}

// PriceData carries the unit price in minor currency units, verbatim from
// the product row (no rounding, no conversion). Currency is passed through
// unvalidated.
type PriceData struct {
	Currency    string      `json:"currency"`
	UnitAmount  int64       `json:"unit_amount"`
	ProductData ProductData `json:"product_data"`
}

type ProductData struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
}

type AdjustableQuantity struct {
	Enabled bool `json:"enabled"`
}

var (
	stripPolicy   = bluemonday.StrictPolicy()
	spaceCollapse = regexp.MustCompile(`\s+`)
)

// PlainDescription strips all markup from a rich-text description, collapses
// whitespace and truncates to MaxDescriptionLen runes. The result never
// contains '<' or '>'.
func PlainDescription(richText string) string {
	if richText == "" {
		return ""
	}
	text := stripPolicy.Sanitize(richText)
	text = strings.TrimSpace(spaceCollapse.ReplaceAllString(text, " "))
	if r := []rune(text); len(r) > MaxDescriptionLen {
		text = string(r[:MaxDescriptionLen])
	}
	return text
}

// FromCartItem converts one cart item into a provider line item. Pure
// transform: no side effects, no validation beyond the description guarantee.
func FromCartItem(it cartdom.Item, imageURLs []string) LineItem {
	return LineItem{
		PriceData: PriceData{
			Currency:   it.Product.Currency,
			UnitAmount: it.Product.Price,
			ProductData: ProductData{
				Name:        it.Product.Name,
				Description: PlainDescription(it.Product.Description),
				Images:      imageURLs,
			},
		},
		Quantity:           it.Count,
		AdjustableQuantity: &AdjustableQuantity{Enabled: true},
	}
}
