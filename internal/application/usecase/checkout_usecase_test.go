package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	cartdom "m3dshop/internal/domain/cart"
	checkoutdom "m3dshop/internal/domain/checkout"
	paymentdom "m3dshop/internal/domain/payment"
)

type fakeStripe struct {
	gotInput paymentdom.CheckoutSessionInput
	resp     *paymentdom.CheckoutSession
	err      error
}

func (f *fakeStripe) CreateCheckoutSession(ctx context.Context, in paymentdom.CheckoutSessionInput) (*paymentdom.CheckoutSession, error) {
	f.gotInput = in
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakePayPal struct {
	gotReq paymentdom.OrderRequest
	resp   *paymentdom.Order
	err    error
}

func (f *fakePayPal) CreateOrder(ctx context.Context, req paymentdom.OrderRequest) (*paymentdom.Order, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func lineItem(name string, unitAmount int64, qty int) checkoutdom.LineItem {
	li := checkoutdom.LineItem{Quantity: qty}
	li.PriceData.Currency = "usd"
	li.PriceData.UnitAmount = unitAmount
	li.PriceData.ProductData.Name = name
	return li
}

func TestMinorToMajor(t *testing.T) {
	cases := []struct {
		minor int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{4999, "49.99"},
		{123456, "1234.56"},
		{-250, "-2.50"},
	}
	for _, c := range cases {
		if got := minorToMajor(c.minor); got != c.want {
			t.Errorf("minorToMajor(%d) = %q, want %q", c.minor, got, c.want)
		}
	}
}

func TestStartStripeBuildsRedirectURLs(t *testing.T) {
	st := &fakeStripe{resp: &paymentdom.CheckoutSession{ID: "cs_123", URL: "https://checkout.stripe.com/c/cs_123"}}
	u := NewCheckoutUsecase(st, nil, "M3D SHOP")

	res, err := u.Start(context.Background(), StartInput{
		LineItems:     []checkoutdom.LineItem{lineItem("Vase", 4999, 1)},
		CustomerEmail: "buyer@example.com",
		Method:        "stripe",
		Origin:        "https://shop.example/",
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if res.Provider != "stripe" || res.URL != "https://checkout.stripe.com/c/cs_123" {
		t.Errorf("result = %+v", res)
	}
	if st.gotInput.SuccessURL != "https://shop.example/confirmation/?success=true&session_id={CHECKOUT_SESSION_ID}" {
		t.Errorf("SuccessURL = %q", st.gotInput.SuccessURL)
	}
	if st.gotInput.CancelURL != "https://shop.example/?canceled=true" {
		t.Errorf("CancelURL = %q", st.gotInput.CancelURL)
	}
	if st.gotInput.CustomerEmail != "buyer@example.com" {
		t.Errorf("CustomerEmail = %q", st.gotInput.CustomerEmail)
	}
}

func TestStartStripsMarkupFromDescriptions(t *testing.T) {
	st := &fakeStripe{resp: &paymentdom.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/c/cs_1"}}
	u := NewCheckoutUsecase(st, nil, "M3D SHOP")

	li := lineItem("Vase", 4999, 1)
	li.PriceData.ProductData.Description = "<script>alert(1)</script> hand-made <b>vase</b>"

	if _, err := u.Start(context.Background(), StartInput{
		LineItems: []checkoutdom.LineItem{li},
		Method:    "stripe",
		Origin:    "https://shop.example",
	}); err != nil {
		t.Fatalf("Start: %v", err)
	}

	got := st.gotInput.LineItems[0].PriceData.ProductData.Description
	if strings.ContainsAny(got, "<>") {
		t.Fatalf("description reached the gateway with markup: %q", got)
	}
	if !strings.Contains(got, "hand-made") || !strings.Contains(got, "vase") {
		t.Errorf("description lost its text: %q", got)
	}
	if strings.Contains(got, "alert(1)") {
		t.Errorf("script body survived stripping: %q", got)
	}
}

func TestStartPayPalAmounts(t *testing.T) {
	pp := &fakePayPal{resp: &paymentdom.Order{
		ID:    "ord-1",
		Links: []paymentdom.Link{{Rel: "approve", Href: "https://paypal.test/approve/ord-1"}},
	}}
	u := NewCheckoutUsecase(nil, pp, "M3D SHOP")

	res, err := u.Start(context.Background(), StartInput{
		LineItems: []checkoutdom.LineItem{
			lineItem("Vase", 4999, 2),
			lineItem("Lamp", 150, 1),
		},
		Method: "paypal",
		Origin: "https://shop.example",
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if res.Provider != "paypal" || res.URL != "https://paypal.test/approve/ord-1" {
		t.Errorf("result = %+v", res)
	}

	req := pp.gotReq
	if req.Intent != "CAPTURE" {
		t.Errorf("Intent = %q", req.Intent)
	}
	if len(req.PurchaseUnits) != 1 {
		t.Fatalf("PurchaseUnits = %d", len(req.PurchaseUnits))
	}
	pu := req.PurchaseUnits[0]
	if pu.Amount.Value != "101.48" || pu.Amount.CurrencyCode != "USD" {
		t.Errorf("total = %s %s, want 101.48 USD", pu.Amount.Value, pu.Amount.CurrencyCode)
	}
	if pu.Amount.Breakdown == nil || pu.Amount.Breakdown.ItemTotal.Value != "101.48" {
		t.Errorf("breakdown = %+v", pu.Amount.Breakdown)
	}
	if len(pu.Items) != 2 || pu.Items[0].UnitAmount.Value != "49.99" || pu.Items[0].Quantity != "2" {
		t.Errorf("items = %+v", pu.Items)
	}
	ac := req.ApplicationContext
	if ac == nil || ac.ReturnURL != "https://shop.example/confirmation/?success=true&provider=paypal" {
		t.Errorf("ApplicationContext = %+v", ac)
	}
	if strings.Contains(ac.ReturnURL, "{") {
		t.Error("return_url must not contain placeholders")
	}
}

func TestStartPayPalNoApproveLink(t *testing.T) {
	pp := &fakePayPal{resp: &paymentdom.Order{ID: "ord-2"}}
	u := NewCheckoutUsecase(nil, pp, "M3D SHOP")

	_, err := u.Start(context.Background(), StartInput{
		LineItems: []checkoutdom.LineItem{lineItem("Vase", 4999, 1)},
		Method:    "paypal",
		Origin:    "https://shop.example",
	})
	if !errors.Is(err, paymentdom.ErrNoApproveLink) {
		t.Fatalf("err = %v, want ErrNoApproveLink", err)
	}
}

func TestStartEmptyCart(t *testing.T) {
	u := NewCheckoutUsecase(&fakeStripe{}, &fakePayPal{}, "M3D SHOP")
	if _, err := u.Start(context.Background(), StartInput{Method: "stripe"}); !errors.Is(err, ErrCheckoutNoLineItems) {
		t.Fatalf("err = %v, want ErrCheckoutNoLineItems", err)
	}
}

func TestBuildLineItems(t *testing.T) {
	state := cartdom.State{
		{
			Product: cartdom.ProductRef{ID: 1, Name: "Vase", Price: 4999, Currency: "usd"},
			Count:   3,
			Images:  []cartdom.ItemImage{{Path: "/products/1/hero.jpg"}},
		},
	}
	items := BuildLineItems(state)
	if len(items) != 1 {
		t.Fatalf("items = %d", len(items))
	}
	li := items[0]
	if li.Quantity != 3 || li.PriceData.UnitAmount != 4999 {
		t.Errorf("line item = %+v", li)
	}
	if len(li.PriceData.ProductData.Images) != 1 {
		t.Errorf("images = %v", li.PriceData.ProductData.Images)
	}
}
