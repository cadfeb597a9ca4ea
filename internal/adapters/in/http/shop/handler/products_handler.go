// internal/adapters/in/http/shop/handler/products_handler.go
package shopHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	usecase "m3dshop/internal/application/usecase"
	catalogdom "m3dshop/internal/domain/catalog"
)

// ProductsHandler serves the listing pages and product details.
type ProductsHandler struct {
	uc *usecase.CatalogUsecase
}

func NewProductsHandler(uc *usecase.CatalogUsecase) http.Handler {
	return &ProductsHandler{uc: uc}
}

func (h *ProductsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		internalError(w, "products handler is not configured")
		return
	}
	// The catalog is read-only over HTTP; anything else is not implemented
	// here, not merely disallowed.
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusNotImplemented, "not_implemented")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	if slug := strings.TrimPrefix(path, "/api/products/"); slug != path && slug != "" {
		h.handleDetail(w, r, slug)
		return
	}
	h.handleList(w, r)
}

func (h *ProductsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	page := parseIntDefault(r.URL.Query().Get("page"), 1)

	p, status, err := h.uc.GetPage(r.Context(), page)
	if err != nil {
		log.Printf("[products_handler] list page=%d failed: %v", page, err)
		internalError(w, "failed to load products")
		return
	}

	w.Header().Set("X-Cache", string(status))
	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) handleDetail(w http.ResponseWriter, r *http.Request, slug string) {
	p, imgs, err := h.uc.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, catalogdom.ErrNotFound) {
			notFound(w)
			return
		}
		log.Printf("[products_handler] detail slug=%q failed: %v", slug, err)
		internalError(w, "failed to load product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"product": p,
		"images":  imgs,
	})
}
