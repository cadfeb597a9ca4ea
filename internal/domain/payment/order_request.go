// internal/domain/payment/order_request.go
package payment

// OrderRequest is the Orders v2 creation payload.
//
// Note on return_url: PayPal rejects placeholders like {order_id}. The
// return URL stays stable and PayPal appends ?token=... after approval; the
// client then posts that token to the capture endpoint.
type OrderRequest struct {
	Intent             string              `json:"intent"`
	PurchaseUnits      []OrderRequestUnit  `json:"purchase_units"`
	ApplicationContext *ApplicationContext `json:"application_context,omitempty"`
}

type OrderRequestUnit struct {
	Amount PurchaseAmount `json:"amount"`
	Items  []OrderItem    `json:"items,omitempty"`
}

type ApplicationContext struct {
	BrandName   string `json:"brand_name,omitempty"`
	LandingPage string `json:"landing_page,omitempty"`
	UserAction  string `json:"user_action,omitempty"`
	ReturnURL   string `json:"return_url,omitempty"`
	CancelURL   string `json:"cancel_url,omitempty"`
}
