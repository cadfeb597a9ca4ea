// internal/adapters/out/payments/stripe_client.go
package payments

import (
	"context"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"

	paymentdom "m3dshop/internal/domain/payment"
)

// StripeClient creates hosted Checkout Sessions via the official SDK.
type StripeClient struct {
	sc *client.API
}

func NewStripeClient(apiKey string) *StripeClient {
	if apiKey == "" {
		return &StripeClient{}
	}
	sc := &client.API{}
	sc.Init(apiKey, nil)
	return &StripeClient{sc: sc}
}

func (c *StripeClient) CreateCheckoutSession(ctx context.Context, in paymentdom.CheckoutSessionInput) (*paymentdom.CheckoutSession, error) {
	if c == nil || c.sc == nil {
		return nil, paymentdom.ErrMissingCredentials
	}

	params := &stripe.CheckoutSessionParams{
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes:       stripe.StringSlice([]string{"card"}),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		SuccessURL:               stripe.String(in.SuccessURL),
		CancelURL:                stripe.String(in.CancelURL),
	}
	params.Context = ctx
	if in.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(in.CustomerEmail)
	}

	for _, li := range in.LineItems {
		pd := &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(li.PriceData.Currency),
			UnitAmount: stripe.Int64(li.PriceData.UnitAmount),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(li.PriceData.ProductData.Name),
			},
		}
		if d := li.PriceData.ProductData.Description; d != "" {
			pd.ProductData.Description = stripe.String(d)
		}
		if imgs := li.PriceData.ProductData.Images; len(imgs) > 0 {
			pd.ProductData.Images = stripe.StringSlice(imgs)
		}

		item := &stripe.CheckoutSessionLineItemParams{
			PriceData: pd,
			Quantity:  stripe.Int64(int64(li.Quantity)),
		}
		if li.AdjustableQuantity != nil && li.AdjustableQuantity.Enabled {
			item.AdjustableQuantity = &stripe.CheckoutSessionLineItemAdjustableQuantityParams{
				Enabled: stripe.Bool(true),
			}
		}
		params.LineItems = append(params.LineItems, item)
	}

	sess, err := c.sc.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return &paymentdom.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}
