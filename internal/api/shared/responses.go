// Package shared holds the response envelope, request decoding helpers and
// context keys used across API handlers and middleware.
package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the uniform response wrapper: every JSON body carries ok, and
// either data or a human-readable message (sometimes both).
type Envelope struct {
	OK      bool        `json:"ok"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err, "path", r.URL.Path)
	}
}

// RespondWithData writes a successful envelope carrying data.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	RespondWithJSON(w, r, status, Envelope{OK: true, Data: data})
}

// RespondWithMessage writes an envelope carrying only a message. ok is
// caller-controlled: some recorded contracts report failures with ok=true
// (e.g. "no record found") and some lookups miss with ok=false at HTTP 200.
func RespondWithMessage(w http.ResponseWriter, r *http.Request, status int, ok bool, message string) {
	RespondWithJSON(w, r, status, Envelope{OK: ok, Message: message})
}

// RespondWithError writes a failed envelope with the given status and message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if status >= http.StatusInternalServerError {
		slog.Error("API error response",
			"status_code", status,
			"message", message,
			"path", r.URL.Path,
			"method", r.Method)
	} else {
		slog.Debug("API error response",
			"status_code", status,
			"message", message,
			"path", r.URL.Path,
			"method", r.Method)
	}
	RespondWithJSON(w, r, status, Envelope{OK: false, Message: message})
}
