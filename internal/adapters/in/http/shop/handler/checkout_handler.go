// internal/adapters/in/http/shop/handler/checkout_handler.go
package shopHandler

import (
	"errors"
	"log"
	"net/http"

	usecase "m3dshop/internal/application/usecase"
	checkoutdom "m3dshop/internal/domain/checkout"
	paymentdom "m3dshop/internal/domain/payment"
)

// CheckoutHandler starts a hosted checkout and returns the redirect URL.
type CheckoutHandler struct {
	uc         *usecase.CheckoutUsecase
	siteOrigin string
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase, siteOrigin string) http.Handler {
	return &CheckoutHandler{uc: uc, siteOrigin: siteOrigin}
}

type checkoutRequest struct {
	LineItems     []checkoutdom.LineItem `json:"line_items"`
	CustomerEmail string                 `json:"customer_email"`
	PaymentMethod string                 `json:"payment_method"`
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		internalError(w, "checkout handler is not configured")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req checkoutRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	res, err := h.uc.Start(r.Context(), usecase.StartInput{
		LineItems:     req.LineItems,
		CustomerEmail: req.CustomerEmail,
		Method:        req.PaymentMethod,
		Origin:        requestOrigin(r, h.siteOrigin),
	})
	if err != nil {
		if errors.Is(err, usecase.ErrCheckoutNoLineItems) {
			badRequest(w, "line_items is empty")
			return
		}
		var ue *paymentdom.UpstreamError
		if errors.As(err, &ue) {
			writeJSON(w, ue.Status, map[string]any{"error": ue.BodyJSON()})
			return
		}
		log.Printf("[checkout_handler] start method=%q failed: %v", req.PaymentMethod, err)
		internalError(w, "failed to start checkout")
		return
	}

	writeJSON(w, http.StatusOK, res)
}
