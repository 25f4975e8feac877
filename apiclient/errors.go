package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/wallet-admin-console/internal/errors"
)

// ErrUnauthorized matches any APIError carrying status 401.
var ErrUnauthorized = apperrors.ErrUnauthorized

// APIError is returned for every non-2xx response.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	Message    string // "error" or "message" field of a JSON body, if any
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("api %s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case apperrors.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case apperrors.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

func newAPIError(req *http.Request, status int, statusText string, header http.Header, body []byte) *APIError {
	return &APIError{
		Method:     req.Method,
		Path:       req.URL.Path,
		StatusCode: status,
		Status:     statusText,
		Header:     header,
		Body:       body,
		Message:    errorMessage(body),
	}
}

func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if len(body) == 0 || json.Unmarshal(body, &payload) != nil {
		return ""
	}
	if payload.Error != "" {
		return strings.TrimSpace(payload.Error)
	}
	return strings.TrimSpace(payload.Message)
}

// StatusCode returns the HTTP status carried by err, or 0 when err did not
// come from a server response.
func StatusCode(err error) int {
	var apiErr *APIError
	if apperrors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
