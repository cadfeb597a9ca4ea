package shopHandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	usecase "m3dshop/internal/application/usecase"
	catalogdom "m3dshop/internal/domain/catalog"
)

type stubCatalogRepo struct {
	products []catalogdom.Product
}

func (s *stubCatalogRepo) List(ctx context.Context, page, pageSize int) ([]catalogdom.Product, error) {
	start := page * pageSize
	if start >= len(s.products) {
		return []catalogdom.Product{}, nil
	}
	end := start + pageSize
	if end > len(s.products) {
		end = len(s.products)
	}
	return s.products[start:end], nil
}

func (s *stubCatalogRepo) GetBySlug(ctx context.Context, slug string) (*catalogdom.Product, error) {
	for i := range s.products {
		if s.products[i].Slug == slug {
			return &s.products[i], nil
		}
	}
	return nil, catalogdom.ErrNotFound
}

func (s *stubCatalogRepo) CountAll(ctx context.Context) (int, error) {
	return len(s.products), nil
}

func newProductsServer(t *testing.T, n int) http.Handler {
	t.Helper()
	products := make([]catalogdom.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, catalogdom.Product{
			ID:       int64(i),
			Slug:     "vase",
			Name:     "مزهرية",
			Price:    4999,
			Currency: "usd",
		})
	}
	uc := usecase.NewCatalogUsecase(&stubCatalogRepo{products: products}, t.TempDir())
	return NewProductsHandler(uc)
}

func TestProductsListHeaders(t *testing.T) {
	h := newProductsServer(t, 8)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products?page=1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", got)
	}
	if got := w.Header().Get("Cache-Control"); got != "public, max-age=300" {
		t.Errorf("Cache-Control = %q", got)
	}

	var page usecase.ProductPage
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page.Products) != 6 || page.TotalPages != 2 {
		t.Errorf("page = %d products, %d pages", len(page.Products), page.TotalPages)
	}

	// Second hit serves from cache.
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products?page=1", nil))
	if got := w.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("X-Cache = %q, want HIT", got)
	}
}

func TestProductsInvalidPageDefaultsToFirst(t *testing.T) {
	h := newProductsServer(t, 3)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products?page=banana", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var page usecase.ProductPage
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Page != 1 || len(page.Products) != 3 {
		t.Errorf("page = %+v", page)
	}
}

func TestProductsPostNotImplemented(t *testing.T) {
	h := newProductsServer(t, 1)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/products", nil))
	if w.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d, want 501", w.Code)
	}
}

func TestProductsDetailAndNotFound(t *testing.T) {
	h := newProductsServer(t, 1)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/vase", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
