package response

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// JSONAttachment writes a 200 JSON response offered as a download named
// filename. Headers are already sent when body runs, so its error can only
// be reported to the caller.
func JSONAttachment(w http.ResponseWriter, filename string, body func(io.Writer) error) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	return body(w)
}
