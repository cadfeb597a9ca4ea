// internal/adapters/in/http/shop/handler/bitcoin_handler.go
package shopHandler

import (
	"log"
	"net/http"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// BitcoinHandler serves the manual Bitcoin payment flow: the shop address
// as JSON and a QR code PNG of its payment URI. No on-chain verification
// happens here; the shop confirms receipt out of band.
type BitcoinHandler struct {
	address string
}

func NewBitcoinHandler(address string) http.Handler {
	return &BitcoinHandler{address: strings.TrimSpace(address)}
}

func (h *BitcoinHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	if h.address == "" {
		writeErr(w, http.StatusNotImplemented, "bitcoin payments are not configured")
		return
	}

	uri := "bitcoin:" + h.address

	if strings.HasSuffix(strings.TrimRight(r.URL.Path, "/"), "/qr") {
		png, err := qrcode.Encode(uri, qrcode.Medium, 256)
		if err != nil {
			log.Printf("[bitcoin_handler] qr encode failed: %v", err)
			internalError(w, "failed to render qr code")
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"address": h.address,
		"uri":     uri,
	})
}
