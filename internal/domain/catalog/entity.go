// internal/domain/catalog/entity.go
package catalog

import (
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("catalog: not found")

// DefaultPageSize is the storefront listing page size.
const DefaultPageSize = 6

// Brand groups products. Name is the Arabic default, NameEN the English
// locale (backfilled from Name when missing).
type Brand struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	NameEN string `json:"name_en,omitempty"`
}

// Product is one catalog entry. Price is in minor currency units and is
// passed to payment providers verbatim; Currency is an ISO code taken from
// the row without validation.
type Product struct {
	ID            int64     `json:"id"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	NameEN        string    `json:"name_en,omitempty"`
	Description   string    `json:"description,omitempty"`
	DescriptionEN string    `json:"description_en,omitempty"`
	Price         int64     `json:"price"`
	Currency      string    `json:"currency"`
	BrandID       int64     `json:"brandId"`
	URL           string    `json:"url,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Brand *Brand `json:"brand,omitempty"`
}

// DisplayName returns the name for a locale, falling back to the Arabic
// default when the English field was never backfilled.
func (p Product) DisplayName(locale string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(locale)), "en") && p.NameEN != "" {
		return p.NameEN
	}
	return p.Name
}

// DisplayDescription mirrors DisplayName for the rich-text description.
func (p Product) DisplayDescription(locale string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(locale)), "en") && p.DescriptionEN != "" {
		return p.DescriptionEN
	}
	return p.Description
}
