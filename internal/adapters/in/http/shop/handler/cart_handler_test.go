package shopHandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"m3dshop/internal/adapters/out/memory"
	usecase "m3dshop/internal/application/usecase"
)

func newCartServer() http.Handler {
	return NewCartHandler(usecase.NewCartUsecase(memory.NewCartRepositoryMem()))
}

func doCart(t *testing.T, h http.Handler, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var res cartResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v (body=%s)", err, w.Body.String())
	}
	return res
}

func TestCartGetIssuesSessionCookie(t *testing.T) {
	h := newCartServer()
	w := doCart(t, h, http.MethodGet, "/api/cart", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var sid string
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			sid = c.Value
		}
	}
	if sid == "" {
		t.Fatal("no session cookie issued")
	}

	res := decodeCart(t, w)
	if len(res.Items) != 0 || res.Total != 0 {
		t.Errorf("fresh cart = %+v", res)
	}
}

func TestCartAddGetRemoveClear(t *testing.T) {
	h := newCartServer()
	cookie := &http.Cookie{Name: sessionCookieName, Value: "test-session"}
	itemBody := `{"item":{"product":{"id":1,"name":"مزهرية","price":4999,"currency":"usd"},"count":5}}`

	// Adding always inserts with count 1, whatever the payload says.
	w := doCart(t, h, http.MethodPost, "/api/cart/items", itemBody, []*http.Cookie{cookie})
	if w.Code != http.StatusOK {
		t.Fatalf("add status = %d body=%s", w.Code, w.Body.String())
	}
	res := decodeCart(t, w)
	if len(res.Items) != 1 || res.Items[0].Count != 1 {
		t.Fatalf("after add = %+v", res.Items)
	}

	// A second add increments.
	w = doCart(t, h, http.MethodPost, "/api/cart/items", itemBody, []*http.Cookie{cookie})
	res = decodeCart(t, w)
	if res.Items[0].Count != 2 || res.Total != 9998 {
		t.Fatalf("after second add = %+v total=%d", res.Items, res.Total)
	}

	w = doCart(t, h, http.MethodDelete, "/api/cart/items", itemBody, []*http.Cookie{cookie})
	res = decodeCart(t, w)
	if res.Items[0].Count != 1 {
		t.Fatalf("after remove = %+v", res.Items)
	}

	w = doCart(t, h, http.MethodDelete, "/api/cart", "", []*http.Cookie{cookie})
	res = decodeCart(t, w)
	if len(res.Items) != 0 {
		t.Fatalf("after clear = %+v", res.Items)
	}
}

func TestCartAddWithoutProductID(t *testing.T) {
	h := newCartServer()
	w := doCart(t, h, http.MethodPost, "/api/cart/items", `{"item":{"count":1}}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCartMethodNotAllowed(t *testing.T) {
	h := newCartServer()
	w := doCart(t, h, http.MethodPut, "/api/cart", "", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
	if allow := w.Header().Get("Allow"); allow != "GET, DELETE" {
		t.Errorf("Allow = %q", allow)
	}
}
