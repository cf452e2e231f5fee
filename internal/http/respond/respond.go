// Package respond writes API responses: bare JSON payloads on success and the
// structured error body used by every failure path.
package respond

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// ErrorBody is the uniform error shape returned to clients.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	Method     string `json:"method"`
	Message    string `json:"message"`
}

// JSON writes a success response.
func JSON(w http.ResponseWriter, status int, payload any) {
	write(w, status, payload)
}

// Error writes the structured error body for the given request and status.
func Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	write(w, status, ErrorBody{
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       r.URL.Path,
		Method:     r.Method,
		Message:    message,
	})
}

func write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respond: encode payload failed: %v", err)
	}
}
