package api

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope of every JSON answer.
type Response struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failed request.
// Details maps a request field to its validation messages.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

// ValidationError collects messages per request field.
type ValidationError map[string][]string

func (v ValidationError) Add(field, message string) {
	v[field] = append(v[field], message)
}

func (v ValidationError) Error() string {
	return "validation failed"
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Response{Error: &ErrorDetail{Code: code, Message: message}})
}

func writeValidationError(w http.ResponseWriter, verr ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, Response{Error: &ErrorDetail{
		Code:    "validation_error",
		Message: verr.Error(),
		Details: verr,
	}})
}
