package message

import (
	"fmt"
	"net/http"
)

// StatusCode is the status of a response message. Codes follow HTTP
// semantics and travel over the wire in numeric form.
type StatusCode int

// Common response statuses.
const (
	StatusOK                  StatusCode = http.StatusOK
	StatusBadRequest          StatusCode = http.StatusBadRequest
	StatusForbidden           StatusCode = http.StatusForbidden
	StatusNotFound            StatusCode = http.StatusNotFound
	StatusUnprocessableEntity StatusCode = http.StatusUnprocessableEntity
	StatusInternalServerError StatusCode = http.StatusInternalServerError
)

// IsSuccess reports whether the status is in the 2xx range.
func (s StatusCode) IsSuccess() bool {
	return s >= 200 && s < 300
}

// String returns the numeric code with its HTTP status text, if any.
func (s StatusCode) String() string {
	if text := http.StatusText(int(s)); text != "" {
		return fmt.Sprintf("%d %s", int(s), text)
	}
	return fmt.Sprintf("%d", int(s))
}
