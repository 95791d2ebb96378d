package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Response is the envelope every JSON endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message})
}

// userUID extracts the authenticated user id supplied by the identity
// provider. The frontend forwards it as X-User-ID; credentials themselves
// never reach this backend.
func userUID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-ID"))
}
