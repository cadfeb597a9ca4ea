// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	cartdom "m3dshop/internal/domain/cart"
	checkoutdom "m3dshop/internal/domain/checkout"
	paymentdom "m3dshop/internal/domain/payment"
)

var (
	ErrCheckoutNoLineItems   = errors.New("checkout_usecase: no line items")
	ErrCheckoutNotConfigured = errors.New("checkout_usecase: gateway is not configured")
)

// StripeGateway is the card-path outbound port.
type StripeGateway interface {
	CreateCheckoutSession(ctx context.Context, in paymentdom.CheckoutSessionInput) (*paymentdom.CheckoutSession, error)
}

// PayPalGateway is the PayPal order-creation outbound port.
type PayPalGateway interface {
	CreateOrder(ctx context.Context, req paymentdom.OrderRequest) (*paymentdom.Order, error)
}

// CheckoutUsecase routes a checkout request to a provider and hands back
// the single redirect URL the client must navigate to.
type CheckoutUsecase struct {
	stripe StripeGateway
	paypal PayPalGateway

	siteName string
}

func NewCheckoutUsecase(stripe StripeGateway, paypal PayPalGateway, siteName string) *CheckoutUsecase {
	if strings.TrimSpace(siteName) == "" {
		siteName = "Store"
	}
	return &CheckoutUsecase{stripe: stripe, paypal: paypal, siteName: siteName}
}

// StartInput is the tagged checkout request. Method values other than
// "paypal" (stripe, bancontact, Bitcoin fallback) take the hosted card
// session path, same as the storefront always has.
type StartInput struct {
	LineItems     []checkoutdom.LineItem
	CustomerEmail string
	Method        string
	Origin        string
}

// StartResult carries the redirect URL plus provider context.
type StartResult struct {
	URL       string            `json:"url"`
	Provider  string            `json:"provider"`
	SessionID string            `json:"session_id,omitempty"`
	Order     *paymentdom.Order `json:"order,omitempty"`
}

func (u *CheckoutUsecase) Start(ctx context.Context, in StartInput) (*StartResult, error) {
	if len(in.LineItems) == 0 {
		return nil, ErrCheckoutNoLineItems
	}
	in.LineItems = sanitizeLineItems(in.LineItems)

	origin := strings.TrimRight(strings.TrimSpace(in.Origin), "/")

	if strings.TrimSpace(in.Method) == "paypal" {
		return u.startPayPal(ctx, in, origin)
	}
	return u.startStripe(ctx, in, origin)
}

func (u *CheckoutUsecase) startStripe(ctx context.Context, in StartInput, origin string) (*StartResult, error) {
	if u.stripe == nil {
		return nil, ErrCheckoutNotConfigured
	}

	sess, err := u.stripe.CreateCheckoutSession(ctx, paymentdom.CheckoutSessionInput{
		LineItems:     in.LineItems,
		CustomerEmail: strings.TrimSpace(in.CustomerEmail),
		SuccessURL:    origin + "/confirmation/?success=true&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     origin + "/?canceled=true",
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[checkout_usecase] stripe session created id=%s", sess.ID)
	return &StartResult{URL: sess.URL, Provider: "stripe", SessionID: sess.ID}, nil
}

func (u *CheckoutUsecase) startPayPal(ctx context.Context, in StartInput, origin string) (*StartResult, error) {
	if u.paypal == nil {
		return nil, ErrCheckoutNotConfigured
	}

	// The request currency is taken from the first line item, uppercased for
	// the provider; amounts convert from minor units to two-decimal
	// major-unit strings.
	currency := strings.ToUpper(in.LineItems[0].PriceData.Currency)
	if currency == "" {
		currency = "USD"
	}

	items := make([]paymentdom.OrderItem, 0, len(in.LineItems))
	var totalMinor int64
	for _, li := range in.LineItems {
		qty := li.Quantity
		if qty < 1 {
			qty = 1
		}
		items = append(items, paymentdom.OrderItem{
			Name:       itemName(li),
			UnitAmount: &paymentdom.Amount{CurrencyCode: currency, Value: minorToMajor(li.PriceData.UnitAmount)},
			Quantity:   fmt.Sprintf("%d", qty),
		})
		totalMinor += li.PriceData.UnitAmount * int64(qty)
	}
	total := minorToMajor(totalMinor)

	order, err := u.paypal.CreateOrder(ctx, paymentdom.OrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []paymentdom.OrderRequestUnit{{
			Amount: paymentdom.PurchaseAmount{
				CurrencyCode: currency,
				Value:        total,
				Breakdown: &paymentdom.AmountBreakdown{
					ItemTotal: &paymentdom.Amount{CurrencyCode: currency, Value: total},
				},
			},
			Items: items,
		}},
		ApplicationContext: &paymentdom.ApplicationContext{
			BrandName:   u.siteName,
			LandingPage: "NO_PREFERENCE",
			UserAction:  "PAY_NOW",
			ReturnURL:   origin + "/confirmation/?success=true&provider=paypal",
			CancelURL:   origin + "/?canceled=true&provider=paypal",
		},
	})
	if err != nil {
		return nil, err
	}

	approve := order.ApproveLink()
	if approve == "" {
		return nil, paymentdom.ErrNoApproveLink
	}

	log.Printf("[checkout_usecase] paypal order created id=%s total=%s %s", order.ID, total, currency)
	return &StartResult{URL: approve, Provider: "paypal", Order: order}, nil
}

// sanitizeLineItems re-applies the description guarantee to line items that
// arrived over the wire. Items built through FromCartItem are already plain
// text; client-supplied ones can carry markup, and the gateways forward
// descriptions verbatim, so stripping happens here, in front of both paths.
func sanitizeLineItems(items []checkoutdom.LineItem) []checkoutdom.LineItem {
	out := make([]checkoutdom.LineItem, len(items))
	copy(out, items)
	for i := range out {
		out[i].PriceData.ProductData.Description = checkoutdom.PlainDescription(out[i].PriceData.ProductData.Description)
	}
	return out
}

// BuildLineItems converts a cart state into provider line items (the
// server-side twin of the client-side builder).
func BuildLineItems(s cartdom.State) []checkoutdom.LineItem {
	out := make([]checkoutdom.LineItem, 0, len(s))
	for _, it := range s {
		var imgs []string
		for _, im := range it.Images {
			imgs = append(imgs, im.Path)
		}
		out = append(out, checkoutdom.FromCartItem(it, imgs))
	}
	return out
}

func itemName(li checkoutdom.LineItem) string {
	if n := strings.TrimSpace(li.PriceData.ProductData.Name); n != "" {
		return n
	}
	return "Item"
}

// minorToMajor renders minor units as a two-decimal major-unit string
// ("4999" -> "49.99") without going through floats.
func minorToMajor(minor int64) string {
	neg := ""
	if minor < 0 {
		neg = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", neg, minor/100, minor%100)
}
