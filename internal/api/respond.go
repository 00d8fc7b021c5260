package api

import (
	"encoding/json"
	"net/http"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeNotAllowed   = "NOT_ALLOWED"
	CodeConflict     = "CONFLICT"
	CodeImportFailed = "IMPORT_FAILED"
	CodeInternal     = "INTERNAL_ERROR"
)

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// respondError writes the uniform error envelope used across the service.
func respondError(w http.ResponseWriter, status int, code, message string, details ...map[string]any) {
	body := errorBody{Code: code, Message: message}
	if len(details) > 0 {
		body.Details = details[0]
	}
	respondJSON(w, status, map[string]errorBody{"error": body})
}

func parseJSON[T any](r *http.Request) (*T, bool) {
	var payload T
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, false
	}
	return &payload, true
}
