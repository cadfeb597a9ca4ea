package usecase

import (
	"context"
	"errors"
	"testing"

	paymentdom "m3dshop/internal/domain/payment"
)

type fakeOrders struct {
	getResponses []*paymentdom.Order
	getErr       error
	captureResp  *paymentdom.Order
	captureErr   error

	getCalls     int
	captureCalls int
}

func (f *fakeOrders) GetOrder(ctx context.Context, orderID string) (*paymentdom.Order, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if len(f.getResponses) == 0 {
		return &paymentdom.Order{ID: orderID}, nil
	}
	o := f.getResponses[0]
	if len(f.getResponses) > 1 {
		f.getResponses = f.getResponses[1:]
	}
	return o, nil
}

func (f *fakeOrders) CaptureOrder(ctx context.Context, orderID string) (*paymentdom.Order, error) {
	f.captureCalls++
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	return f.captureResp, nil
}

func completedOrder(id string, itemNames ...string) *paymentdom.Order {
	items := make([]paymentdom.OrderItem, 0, len(itemNames))
	for _, n := range itemNames {
		items = append(items, paymentdom.OrderItem{Name: n})
	}
	return &paymentdom.Order{
		ID:     id,
		Status: "COMPLETED",
		PurchaseUnits: []paymentdom.PurchaseUnit{{
			Items: items,
			Payments: &paymentdom.Payments{
				Captures: []paymentdom.Capture{{ID: "cap-1", Status: paymentdom.CaptureStatusCompleted}},
			},
		}},
	}
}

func pendingOrder(id string, itemNames ...string) *paymentdom.Order {
	o := completedOrder(id, itemNames...)
	o.Status = "APPROVED"
	o.PurchaseUnits[0].Payments = nil
	return o
}

func TestCaptureAlreadyCompletedSkipsCapture(t *testing.T) {
	f := &fakeOrders{getResponses: []*paymentdom.Order{completedOrder("ord-1", "Vase")}}
	u := NewCaptureUsecase(f)

	res, err := u.Capture(context.Background(), "ord-1")
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if !res.AlreadyCaptured {
		t.Error("expected AlreadyCaptured")
	}
	if f.captureCalls != 0 {
		t.Errorf("captureCalls = %d, want 0", f.captureCalls)
	}
	if len(res.Items) != 1 || res.Items[0] != "Vase" {
		t.Errorf("Items = %v", res.Items)
	}
}

func TestCaptureHappyPathRefetchesItems(t *testing.T) {
	f := &fakeOrders{
		getResponses: []*paymentdom.Order{
			pendingOrder("ord-2"),
			completedOrder("ord-2", "Vase", "Lamp"),
		},
		captureResp: completedOrder("ord-2"),
	}
	u := NewCaptureUsecase(f)

	res, err := u.Capture(context.Background(), "ord-2")
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if res.AlreadyCaptured {
		t.Error("unexpected AlreadyCaptured")
	}
	if f.captureCalls != 1 {
		t.Errorf("captureCalls = %d, want 1", f.captureCalls)
	}
	if len(res.Items) != 2 {
		t.Errorf("Items = %v, want names from the re-fetched order", res.Items)
	}
	if res.Capture == nil || res.Capture.Status != paymentdom.CaptureStatusCompleted {
		t.Errorf("Capture = %+v", res.Capture)
	}
}

func TestCaptureLostRaceConvergesOnAlreadyCaptured(t *testing.T) {
	upstream := &paymentdom.UpstreamError{Status: 422, Body: []byte(`{"name":"UNPROCESSABLE_ENTITY"}`)}
	f := &fakeOrders{
		getResponses: []*paymentdom.Order{
			pendingOrder("ord-3"),
			completedOrder("ord-3", "Vase"),
		},
		captureErr: upstream,
	}
	u := NewCaptureUsecase(f)

	res, err := u.Capture(context.Background(), "ord-3")
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if !res.AlreadyCaptured {
		t.Error("expected AlreadyCaptured after losing the race")
	}
	if f.captureCalls != 1 {
		t.Errorf("captureCalls = %d, want 1", f.captureCalls)
	}
}

func TestCaptureFailurePropagatesWhenNotCaptured(t *testing.T) {
	upstream := &paymentdom.UpstreamError{Status: 422, Body: []byte(`{"name":"ORDER_NOT_APPROVED"}`)}
	f := &fakeOrders{
		getResponses: []*paymentdom.Order{pendingOrder("ord-4"), pendingOrder("ord-4")},
		captureErr:   upstream,
	}
	u := NewCaptureUsecase(f)

	_, err := u.Capture(context.Background(), "ord-4")
	var ue *paymentdom.UpstreamError
	if !errors.As(err, &ue) || ue.Status != 422 {
		t.Fatalf("err = %v, want the original upstream error", err)
	}
}

func TestCaptureDoubleRequestCapturesOnce(t *testing.T) {
	f := &fakeOrders{
		getResponses: []*paymentdom.Order{pendingOrder("ord-5")},
		captureResp:  completedOrder("ord-5", "Vase"),
	}
	u := NewCaptureUsecase(f)

	if _, err := u.Capture(context.Background(), "ord-5"); err != nil {
		t.Fatalf("first Capture: %v", err)
	}

	// The provider now reports COMPLETED; a retried request must not pay
	// twice.
	f.getResponses = []*paymentdom.Order{completedOrder("ord-5", "Vase")}
	res, err := u.Capture(context.Background(), "ord-5")
	if err != nil {
		t.Fatalf("second Capture: %v", err)
	}
	if !res.AlreadyCaptured {
		t.Error("expected second request to report AlreadyCaptured")
	}
	if f.captureCalls != 1 {
		t.Errorf("captureCalls = %d, want 1 across both requests", f.captureCalls)
	}
}

func TestCaptureMissingToken(t *testing.T) {
	u := NewCaptureUsecase(&fakeOrders{})
	if _, err := u.Capture(context.Background(), "  "); !errors.Is(err, ErrCaptureMissingToken) {
		t.Fatalf("err = %v, want ErrCaptureMissingToken", err)
	}
}
