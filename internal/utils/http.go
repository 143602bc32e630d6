package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ContentTypeJSON is the media type of every body the API writes.
const ContentTypeJSON = "application/json"

// WriteJSON serializes data and writes it with the given status code.
//
// Headers are only touched after marshaling succeeds. On a marshaling failure
// the response becomes a bare 500 and the wrapped error is returned, so the
// caller can log it.
//
// Returns the number of body bytes written.
//
// Example usage:
//
//	utils.WriteJSON(w, models.MessageResponse{Message: "ok"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", ContentTypeJSON)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}
