package errors

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// RespondError writes a standardized error response to the HTTP response writer
func RespondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   status,
		Message: message,
	})
}

// RespondStatus writes an error response with the fixed message for status
func RespondStatus(w http.ResponseWriter, status int) {
	RespondError(w, status, MessageFor(status))
}

// RespondBadRequest writes a bad request error response
func RespondBadRequest(w http.ResponseWriter) {
	RespondStatus(w, http.StatusBadRequest)
}

// RespondNotFound writes a not found error response
func RespondNotFound(w http.ResponseWriter) {
	RespondStatus(w, http.StatusNotFound)
}

// RespondMethodNotAllowed writes a method not allowed error response listing
// the methods the path accepts
func RespondMethodNotAllowed(w http.ResponseWriter, allowed []string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	RespondStatus(w, http.StatusMethodNotAllowed)
}

// RespondUnprocessable writes an unprocessable entity error response
func RespondUnprocessable(w http.ResponseWriter) {
	RespondStatus(w, http.StatusUnprocessableEntity)
}

// RespondInternalError writes an internal server error response
func RespondInternalError(w http.ResponseWriter) {
	RespondStatus(w, http.StatusInternalServerError)
}

// RespondServiceUnavailable writes a service unavailable error response
func RespondServiceUnavailable(w http.ResponseWriter) {
	RespondStatus(w, http.StatusServiceUnavailable)
}
