package payments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	paymentdom "m3dshop/internal/domain/payment"
)

func newPayPalTestServer(t *testing.T, orderStatus int, orderBody string) (*httptest.Server, *int) {
	t.Helper()
	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		if r.Method != http.MethodPost {
			t.Errorf("token request method = %s", r.Method)
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Basic ") {
			t.Errorf("token request must use basic auth")
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})
	})
	mux.HandleFunc("/v2/checkout/orders/", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("order request auth = %q", got)
		}
		w.WriteHeader(orderStatus)
		w.Write([]byte(orderBody))
	})
	return httptest.NewServer(mux), &tokenCalls
}

func TestGetOrder(t *testing.T) {
	srv, tokenCalls := newPayPalTestServer(t, http.StatusOK, `{
		"id": "ORD-1", "status": "APPROVED",
		"purchase_units": [{"items": [{"name": "قالب يلاشوت"}]}],
		"links": [{"href": "https://paypal/approve", "rel": "approve"}]
	}`)
	defer srv.Close()

	c := NewPayPalClient("", "cid", "sec").WithBaseURL(srv.URL)
	order, err := c.GetOrder(context.Background(), "ORD-1")
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if order.ID != "ORD-1" || order.ApproveLink() != "https://paypal/approve" {
		t.Fatalf("unexpected order: %+v", order)
	}
	if got := order.ItemNames(); len(got) != 1 || got[0] != "قالب يلاشوت" {
		t.Fatalf("item names: %v", got)
	}
	if *tokenCalls != 1 {
		t.Fatalf("token fetched %d times, want 1 (per call, no cache)", *tokenCalls)
	}
}

func TestCaptureOrderUpstreamErrorPassthrough(t *testing.T) {
	srv, _ := newPayPalTestServer(t, http.StatusUnprocessableEntity, `{"name":"ORDER_ALREADY_CAPTURED"}`)
	defer srv.Close()

	c := NewPayPalClient("", "cid", "sec").WithBaseURL(srv.URL)
	_, err := c.CaptureOrder(context.Background(), "ORD-1")

	var ue *paymentdom.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("want UpstreamError, got %v", err)
	}
	if ue.Status != http.StatusUnprocessableEntity {
		t.Fatalf("status must pass through, got %d", ue.Status)
	}
	if !strings.Contains(string(ue.Body), "ORDER_ALREADY_CAPTURED") {
		t.Fatalf("body must pass through, got %s", ue.Body)
	}
}

func TestMissingCredentials(t *testing.T) {
	c := NewPayPalClient("", "", "")
	_, err := c.GetOrder(context.Background(), "ORD-1")
	if !errors.Is(err, paymentdom.ErrMissingCredentials) {
		t.Fatalf("want ErrMissingCredentials, got %v", err)
	}
}

func TestCreateOrderPayload(t *testing.T) {
	var gotBody []byte
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"id":"ORD-9","status":"CREATED","links":[{"href":"https://paypal/approve","rel":"approve"}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewPayPalClient("", "cid", "sec").WithBaseURL(srv.URL)
	order, err := c.CreateOrder(context.Background(), paymentdom.OrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []paymentdom.OrderRequestUnit{{
			Amount: paymentdom.PurchaseAmount{CurrencyCode: "USD", Value: "79.99"},
		}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ID != "ORD-9" {
		t.Fatalf("order id: %q", order.ID)
	}
	if !strings.Contains(string(gotBody), `"intent":"CAPTURE"`) {
		t.Fatalf("payload missing intent: %s", gotBody)
	}
	if !strings.Contains(string(gotBody), `"value":"79.99"`) {
		t.Fatalf("payload missing amount: %s", gotBody)
	}
}
