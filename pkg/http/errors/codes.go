package errors

import "net/http"

// Fixed messages carried by failure responses, one per status.
const (
	MsgBadRequest          = "Bad request"
	MsgNotFound            = "Not found"
	MsgMethodNotAllowed    = "Method not allowed"
	MsgUnprocessableEntity = "Unprocessable entity"
	MsgInternalError       = "Internal server error"
	MsgServiceUnavailable  = "Service unavailable"
)

// MessageFor returns the fixed message for status.
func MessageFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusMethodNotAllowed:
		return MsgMethodNotAllowed
	case http.StatusUnprocessableEntity:
		return MsgUnprocessableEntity
	case http.StatusServiceUnavailable:
		return MsgServiceUnavailable
	case http.StatusInternalServerError:
		return MsgInternalError
	default:
		return http.StatusText(status)
	}
}
