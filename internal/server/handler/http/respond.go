// Package http provides the JSON API that fronts the record stores: session
// management, the five entity collections and the reception document export.
// Input validation lives here; the stores themselves accept whatever they
// are given.
package http

import (
	"encoding/json"
	"net/http"
)

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the error payload every failure degrades to.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
