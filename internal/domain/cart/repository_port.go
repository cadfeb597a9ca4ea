// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository persists one serialized cart per session id.
//
// Policy:
//   - Load returns (nil, nil) when nothing is stored for the session.
//   - Malformed stored content is the repository's problem: it warn-logs and
//     reports not-found instead of failing the request.
//   - Save overwrites the whole document (last write wins; concurrent sessions
//     sharing an id are not coordinated beyond that).
type Repository interface {
	Load(ctx context.Context, sessionID string) (State, error)
	Save(ctx context.Context, sessionID string, s State) error
	Delete(ctx context.Context, sessionID string) error
}
