// internal/adapters/in/http/shop/handler/cart_handler.go
package shopHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	usecase "m3dshop/internal/application/usecase"
	cartdom "m3dshop/internal/domain/cart"
)

// CartHandler serves the session cart endpoints:
//
//	GET    /api/cart        current state + total
//	DELETE /api/cart        clear
//	POST   /api/cart/items  add one unit of a product
//	DELETE /api/cart/items  remove one unit of a product
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		internalError(w, "cart handler is not configured")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	isItems := strings.HasSuffix(path, "/items")

	switch {
	case !isItems && r.Method == http.MethodGet:
		h.handleGet(w, r)
	case !isItems && r.Method == http.MethodDelete:
		h.handleClear(w, r)
	case isItems && r.Method == http.MethodPost:
		h.handleAddItem(w, r)
	case isItems && r.Method == http.MethodDelete:
		h.handleRemoveItem(w, r)
	default:
		if isItems {
			methodNotAllowed(w, "POST, DELETE")
		} else {
			methodNotAllowed(w, "GET, DELETE")
		}
	}
}

type cartItemRequest struct {
	Item cartdom.Item `json:"item"`
}

type cartResponse struct {
	Items cartdom.State `json:"items"`
	Total int64         `json:"total"`
}

func (h *CartHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	state, total, err := h.uc.Get(r.Context(), sid)
	if err != nil {
		log.Printf("[cart_handler] get failed: %v", err)
		internalError(w, "failed to load cart")
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Items: state, Total: total})
}

func (h *CartHandler) handleClear(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	state, err := h.uc.Clear(r.Context(), sid)
	if err != nil {
		log.Printf("[cart_handler] clear failed: %v", err)
		internalError(w, "failed to clear cart")
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Items: state, Total: cartdom.Total(state)})
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	sid := sessionID(w, r)
	state, err := h.uc.AddItem(r.Context(), sid, req.Item)
	if err != nil {
		if errors.Is(err, usecase.ErrCartInvalidArgument) {
			badRequest(w, "item.product.id is required")
			return
		}
		log.Printf("[cart_handler] add item failed: %v", err)
		internalError(w, "failed to add item")
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Items: state, Total: cartdom.Total(state)})
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	sid := sessionID(w, r)
	state, err := h.uc.RemoveItem(r.Context(), sid, req.Item)
	if err != nil {
		if errors.Is(err, usecase.ErrCartInvalidArgument) {
			badRequest(w, "item.product.id is required")
			return
		}
		log.Printf("[cart_handler] remove item failed: %v", err)
		internalError(w, "failed to remove item")
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Items: state, Total: cartdom.Total(state)})
}
