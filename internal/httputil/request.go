package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"jsonatlas/internal/config"
)

// ParseJSON decodes JSON from the request body into the given destination.
// The body is capped so oversized uploads fail with a clear error instead of
// exhausting memory.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBytes)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
