package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// MessageResponse is the body of plain informational and error replies.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON serializes data to JSON and writes it with the given status.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error. On success it returns the number of body
// bytes written.
//
//	WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteMessage writes {"message": message} with the given status.
func WriteMessage(w http.ResponseWriter, message string, statusCode int) {
	_, _ = WriteJSON(w, MessageResponse{Message: message}, statusCode)
}
