// internal/domain/payment/entity.go
package payment

import (
	"m3dshop/internal/domain/checkout"
)

// PayPal Orders v2 snapshots, typed at the boundary. The service only reads
// these; the provider owns them. A capture's status transition is one-way:
// uncaptured -> COMPLETED, never back.

const CaptureStatusCompleted = "COMPLETED"

// Amount is a major-unit money string ("49.99") plus its currency code.
type Amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

// Capture is the capture sub-resource of a purchase unit.
type Capture struct {
	ID         string  `json:"id"`
	Status     string  `json:"status"`
	Amount     *Amount `json:"amount,omitempty"`
	CreateTime string  `json:"create_time,omitempty"`
	UpdateTime string  `json:"update_time,omitempty"`
}

// OrderItem is one provider-side line of the order.
type OrderItem struct {
	Name       string  `json:"name"`
	UnitAmount *Amount `json:"unit_amount,omitempty"`
	Quantity   string  `json:"quantity,omitempty"`
}

type Payments struct {
	Captures []Capture `json:"captures,omitempty"`
}

type AmountBreakdown struct {
	ItemTotal *Amount `json:"item_total,omitempty"`
}

type PurchaseAmount struct {
	CurrencyCode string           `json:"currency_code"`
	Value        string           `json:"value"`
	Breakdown    *AmountBreakdown `json:"breakdown,omitempty"`
}

type PurchaseUnit struct {
	Amount   *PurchaseAmount `json:"amount,omitempty"`
	Items    []OrderItem     `json:"items,omitempty"`
	Payments *Payments       `json:"payments,omitempty"`
}

type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method,omitempty"`
}

// Order is the provider order snapshot (creation response, GET response and
// capture response all share this shape).
type Order struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units,omitempty"`
	Links         []Link         `json:"links,omitempty"`
}

// CompletedCapture returns the first COMPLETED capture across purchase
// units, or nil.
func (o *Order) CompletedCapture() *Capture {
	if o == nil {
		return nil
	}
	for pi := range o.PurchaseUnits {
		pu := &o.PurchaseUnits[pi]
		if pu.Payments == nil {
			continue
		}
		for ci := range pu.Payments.Captures {
			if pu.Payments.Captures[ci].Status == CaptureStatusCompleted {
				return &pu.Payments.Captures[ci]
			}
		}
	}
	return nil
}

// FirstCapture returns the first capture regardless of status, or nil.
func (o *Order) FirstCapture() *Capture {
	if o == nil {
		return nil
	}
	for pi := range o.PurchaseUnits {
		pu := &o.PurchaseUnits[pi]
		if pu.Payments != nil && len(pu.Payments.Captures) > 0 {
			return &pu.Payments.Captures[0]
		}
	}
	return nil
}

// ItemNames flattens purchase-unit item names. Never nil: extraction
// failure degrades to an empty list, it does not error.
func (o *Order) ItemNames() []string {
	names := []string{}
	if o == nil {
		return names
	}
	for _, pu := range o.PurchaseUnits {
		for _, it := range pu.Items {
			if it.Name != "" {
				names = append(names, it.Name)
			}
		}
	}
	return names
}

// ApproveLink returns the href of the link whose rel is exactly "approve",
// or "" when absent (callers must treat "" as a failed order creation).
func (o *Order) ApproveLink() string {
	if o == nil {
		return ""
	}
	for _, l := range o.Links {
		if l.Rel == "approve" {
			return l.Href
		}
	}
	return ""
}

// CaptureResult is the outcome of the idempotent capture protocol.
// AlreadyCaptured is true when a COMPLETED capture pre-existed (or was won
// by a racing request); Items always carries the purchased item names.
type CaptureResult struct {
	AlreadyCaptured bool     `json:"alreadyCaptured"`
	Capture         *Capture `json:"capture,omitempty"`
	Order           *Order   `json:"order,omitempty"`
	Items           []string `json:"items"`
}

// CheckoutSessionInput carries everything the hosted session needs. The
// success URL embeds the {CHECKOUT_SESSION_ID} placeholder which Stripe
// substitutes on redirect.
type CheckoutSessionInput struct {
	LineItems     []checkout.LineItem
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is the hosted-session result of the card path.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
