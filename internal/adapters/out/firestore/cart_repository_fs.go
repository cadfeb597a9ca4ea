// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "m3dshop/internal/domain/cart"
)

// DefaultCartTTL is the inactivity window after which a cart document
// becomes eligible for auto deletion (Firestore TTL on expiresAt).
const DefaultCartTTL = 7 * 24 * time.Hour

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
//   - collection: carts
//   - docId: sessionId (docId is the source of truth)
//   - fields: cart (the JSON-serialized item array, same shape the browser
//     would keep under localStorage "cart"), updatedAt, expiresAt
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("carts")
}

type cartDoc struct {
	Cart      string    `firestore:"cart"`
	UpdatedAt time.Time `firestore:"updatedAt"`
	ExpiresAt time.Time `firestore:"expiresAt"`
}

// Load returns (nil, nil) if not found. A document whose payload does not
// parse as an item array is treated as not found: warn-logged, discarded,
// never fatal.
func (r *CartRepositoryFS) Load(ctx context.Context, sessionID string) (cartdom.State, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, errors.New("cart_repository_fs: sessionID is empty")
	}

	snap, err := r.col().Doc(sid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	// Parse the raw field by hand: older documents may carry a non-string
	// payload, and DataTo on a mismatched schema would fail the request.
	data := snap.Data()
	raw, _ := data[cartdom.StorageKey].(string)

	s, ok := cartdom.UnmarshalDoc(raw)
	if !ok {
		log.Printf("[cart_repository_fs] WARN: discarding malformed cart doc sessionId=%q", sid)
		return nil, nil
	}
	return s, nil
}

// Save overwrites the full document (simple & predictable) and refreshes
// the TTL basis.
func (r *CartRepositoryFS) Save(ctx context.Context, sessionID string, s cartdom.State) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return errors.New("cart_repository_fs: sessionID is empty")
	}

	raw, err := cartdom.MarshalDoc(s)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = r.col().Doc(sid).Set(ctx, cartDoc{
		Cart:      raw,
		UpdatedAt: now,
		ExpiresAt: now.Add(DefaultCartTTL),
	})
	return err
}

func (r *CartRepositoryFS) Delete(ctx context.Context, sessionID string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return errors.New("cart_repository_fs: sessionID is empty")
	}
	_, err := r.col().Doc(sid).Delete(ctx)
	return err
}
