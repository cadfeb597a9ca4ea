// internal/adapters/in/http/shop/handler/helper_handler.go
package shopHandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// sessionCookieName keys the anonymous cart session.
const sessionCookieName = "cart_session"

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": strings.TrimSpace(msg)})
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed")
}

func notFound(w http.ResponseWriter) {
	writeErr(w, http.StatusNotFound, "not_found")
}

func badRequest(w http.ResponseWriter, msg string) {
	writeErr(w, http.StatusBadRequest, msg)
}

func internalError(w http.ResponseWriter, msg string) {
	writeErr(w, http.StatusInternalServerError, msg)
}

func readJSON(r *http.Request, dst any) error {
	if dst == nil {
		return errors.New("dst is nil")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)) // 1MB
	return dec.Decode(dst)
}

func parseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// sessionID resolves the cart session for this request, issuing a cookie on
// first touch. The cart lives server-side; the cookie is just the key.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		if sid := strings.TrimSpace(c.Value); sid != "" {
			return sid
		}
	}
	sid := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}

// requestOrigin picks the storefront origin for redirect URLs: the Origin
// header when present, otherwise the configured site URL.
func requestOrigin(r *http.Request, fallback string) string {
	if o := strings.TrimSpace(r.Header.Get("Origin")); o != "" {
		return o
	}
	return fallback
}
