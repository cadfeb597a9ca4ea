// internal/adapters/in/http/shop/router.go
package shop

import (
	"log"
	"net/http"
)

// Deps is the storefront handler set.
type Deps struct {
	Products http.Handler
	Cart     http.Handler
	Checkout http.Handler
	Capture  http.Handler
	Contact  http.Handler
	Bitcoin  http.Handler
}

// handleSafe registers pattern with h.
// If h is nil, it logs and registers NotFoundHandler instead (so the service
// still boots with a partial configuration).
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[shop.router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers the storefront routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	// catalog
	handleSafe(mux, "/api/products", deps.Products, "Products")
	handleSafe(mux, "/api/products/", deps.Products, "Products")

	// cart
	handleSafe(mux, "/api/cart", deps.Cart, "Cart")
	handleSafe(mux, "/api/cart/", deps.Cart, "Cart")

	// checkout
	handleSafe(mux, "/api/checkout_sessions", deps.Checkout, "Checkout")
	handleSafe(mux, "/api/checkout_sessions/", deps.Checkout, "Checkout")

	// paypal capture
	handleSafe(mux, "/api/paypal/capture", deps.Capture, "Capture")
	handleSafe(mux, "/api/paypal/capture/", deps.Capture, "Capture")

	// contact
	handleSafe(mux, "/api/contact", deps.Contact, "Contact")
	handleSafe(mux, "/api/contact/", deps.Contact, "Contact")

	// bitcoin
	handleSafe(mux, "/api/bitcoin", deps.Bitcoin, "Bitcoin")
	handleSafe(mux, "/api/bitcoin/", deps.Bitcoin, "Bitcoin")
}
