// internal/adapters/in/http/shop/handler/capture_handler.go
package shopHandler

import (
	"errors"
	"log"
	"net/http"

	usecase "m3dshop/internal/application/usecase"
	paymentdom "m3dshop/internal/domain/payment"
)

// CaptureHandler finalizes an approved PayPal order. Upstream failures pass
// through with the provider's own status and body so the client can tell a
// declined capture from a server fault.
type CaptureHandler struct {
	uc *usecase.CaptureUsecase
}

func NewCaptureHandler(uc *usecase.CaptureUsecase) http.Handler {
	return &CaptureHandler{uc: uc}
}

type captureRequest struct {
	Token string `json:"token"`
}

func (h *CaptureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		internalError(w, "capture handler is not configured")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req captureRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	res, err := h.uc.Capture(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, usecase.ErrCaptureMissingToken) {
			badRequest(w, "token is required")
			return
		}
		var ue *paymentdom.UpstreamError
		if errors.As(err, &ue) {
			writeJSON(w, ue.Status, map[string]any{"error": ue.BodyJSON()})
			return
		}
		log.Printf("[capture_handler] capture token=%q failed: %v", req.Token, err)
		internalError(w, "failed to capture order")
		return
	}

	writeJSON(w, http.StatusOK, res)
}
