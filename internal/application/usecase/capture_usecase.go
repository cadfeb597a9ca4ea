// internal/application/usecase/capture_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	paymentdom "m3dshop/internal/domain/payment"
)

var ErrCaptureMissingToken = errors.New("capture_usecase: missing order token")

// PayPalOrders is the outbound port the capture protocol needs.
type PayPalOrders interface {
	GetOrder(ctx context.Context, orderID string) (*paymentdom.Order, error)
	CaptureOrder(ctx context.Context, orderID string) (*paymentdom.Order, error)
}

// CaptureUsecase finalizes an approved PayPal order. The protocol is
// idempotent at the provider level: the order is inspected before any
// capture attempt, and a failed capture is re-checked against the order
// state before the failure is surfaced, so a refresh or a racing duplicate
// request converges on the same already-captured answer instead of a
// second charge.
type CaptureUsecase struct {
	orders PayPalOrders
}

func NewCaptureUsecase(orders PayPalOrders) *CaptureUsecase {
	return &CaptureUsecase{orders: orders}
}

func (u *CaptureUsecase) Capture(ctx context.Context, token string) (*paymentdom.CaptureResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrCaptureMissingToken
	}

	order, err := u.orders.GetOrder(ctx, token)
	if err != nil {
		return nil, err
	}

	if cap := order.CompletedCapture(); cap != nil {
		log.Printf("[capture_usecase] order %s already captured (capture %s)", token, cap.ID)
		return &paymentdom.CaptureResult{
			AlreadyCaptured: true,
			Capture:         cap,
			Order:           order,
			Items:           order.ItemNames(),
		}, nil
	}

	captured, err := u.orders.CaptureOrder(ctx, token)
	if err != nil {
		// A concurrent request may have won the capture between our GET and
		// POST; a fresh snapshot that shows a COMPLETED capture means the
		// money moved exactly once and this request can succeed too.
		recheck, rerr := u.orders.GetOrder(ctx, token)
		if rerr == nil {
			if cap := recheck.CompletedCapture(); cap != nil {
				log.Printf("[capture_usecase] order %s capture raced, treating as already captured", token)
				return &paymentdom.CaptureResult{
					AlreadyCaptured: true,
					Capture:         cap,
					Order:           recheck,
					Items:           recheck.ItemNames(),
				}, nil
			}
		}
		return nil, err
	}

	// Capture responses omit purchase-unit items, so re-fetch the order once
	// for the authoritative item names. Failure here is non-fatal: the
	// capture succeeded and that fact must not be hidden.
	items := captured.ItemNames()
	if full, ferr := u.orders.GetOrder(ctx, token); ferr == nil {
		items = full.ItemNames()
	} else {
		log.Printf("[capture_usecase] WARN post-capture fetch for order %s failed: %v", token, ferr)
	}

	cap := captured.CompletedCapture()
	if cap == nil {
		cap = captured.FirstCapture()
	}
	log.Printf("[capture_usecase] order %s captured", token)
	return &paymentdom.CaptureResult{
		AlreadyCaptured: false,
		Capture:         cap,
		Order:           captured,
		Items:           items,
	}, nil
}
