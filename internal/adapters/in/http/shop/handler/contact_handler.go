// internal/adapters/in/http/shop/handler/contact_handler.go
package shopHandler

import (
	"errors"
	"log"
	"net/http"

	usecase "m3dshop/internal/application/usecase"
)

// ContactHandler accepts storefront contact messages.
type ContactHandler struct {
	uc *usecase.ContactUsecase
}

func NewContactHandler(uc *usecase.ContactUsecase) http.Handler {
	return &ContactHandler{uc: uc}
}

func (h *ContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		internalError(w, "contact handler is not configured")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var in usecase.ContactInput
	if err := readJSON(r, &in); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	if err := h.uc.Submit(r.Context(), in); err != nil {
		if errors.Is(err, usecase.ErrContactInvalidArgument) {
			badRequest(w, err.Error())
			return
		}
		log.Printf("[contact_handler] submit failed: %v", err)
		internalError(w, "failed to send message")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
