package api

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/cookbook/pkg/errors"
)

// ErrCodeRateLimitExceeded is produced by the HTTP layer itself
const ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// WriteError writes error response
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code, message string, retryable bool, details map[string]any) {

	id := requestID(r.Context())
	if id == "" {
		id = uuid.New().String()
	}

	RespondJSON(w, statusCode, ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: id,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// statusOf maps an error code to its HTTP status.
func statusOf(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeValidation:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError renders err. Causes of server-side failures are logged
// and never returned to the client.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.CodeOf(err)
	status := statusOf(code)

	message := "Internal server error"
	var details map[string]any
	var se *errors.StructuredError
	if stderrors.As(err, &se) {
		message = se.Message
		details = se.Context
	}

	if status >= http.StatusInternalServerError {
		s.log.Error("%s %s failed [%s]: %v", r.Method, r.URL.Path, requestID(r.Context()), err)
		WriteError(w, r, status, string(code), message, code == errors.ErrCodeDatabase, nil)
		return
	}
	WriteError(w, r, status, string(code), message, false, details)
}
