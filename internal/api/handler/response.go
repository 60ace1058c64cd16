package handler

import (
	"encoding/json"
	"net/http"
)

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, "failed to encode response", http.StatusInternalServerError)
		}
	}
}

// ErrorResponse is the error shape shared by every endpoint. Supported is
// populated on unsupported-URL rejections, Troubleshooting on download
// failures.
type ErrorResponse struct {
	Error           string   `json:"error"`
	Supported       []string `json:"supported,omitempty"`
	Troubleshooting []string `json:"troubleshooting,omitempty"`
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// Unsupported writes the 400 rejection for URLs outside the platform set.
func Unsupported(w http.ResponseWriter, message string, supported []string) {
	JSON(w, http.StatusBadRequest, ErrorResponse{
		Error:     message,
		Supported: supported,
	})
}

// Failure writes the 500 response for extraction failures.
func Failure(w http.ResponseWriter, message string, troubleshooting []string) {
	JSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:           message,
		Troubleshooting: troubleshooting,
	})
}
