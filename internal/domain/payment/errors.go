// internal/domain/payment/errors.go
package payment

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials is a configuration error: surfaced as a
	// 500-class response, never retried.
	ErrMissingCredentials = errors.New("payment: missing provider credentials")

	// ErrNoApproveLink means order creation succeeded but the response
	// carried no link with rel "approve"; the caller has no usable redirect.
	ErrNoApproveLink = errors.New("payment: order response has no approve link")
)

// UpstreamError carries a provider failure verbatim. Status and Body are
// passed through to the end caller untouched.
type UpstreamError struct {
	Status int
	Body   []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("payment: upstream status=%d body=%s", e.Status, string(e.Body))
}

// BodyJSON returns the body as raw JSON when it parses, otherwise the body
// wrapped as a JSON string (providers sometimes answer plain text).
func (e *UpstreamError) BodyJSON() json.RawMessage {
	if json.Valid(e.Body) && len(e.Body) > 0 {
		return json.RawMessage(e.Body)
	}
	quoted, _ := json.Marshal(string(e.Body))
	return json.RawMessage(quoted)
}
