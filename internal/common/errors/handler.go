package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorHandler turns component errors into HTTP responses.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

type errorBody struct {
	Error *StandardError `json:"error"`
}

// HTTPStatus maps an error code onto a response status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeSessionNotFound, ErrCodeMemberNotFound:
		return http.StatusNotFound
	case ErrCodeAdvisoryTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeAdvisoryFailed, ErrCodeMemberLookupFailed:
		return http.StatusBadGateway
	case ErrCodeSessionStoreFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteHTTP logs err and writes it as a JSON error body.
func (h *ErrorHandler) WriteHTTP(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := Normalize(err)
	status := HTTPStatus(stdErr.Code)

	if h.logger != nil {
		h.logger.Error("Request failed", map[string]interface{}{
			"method":        r.Method,
			"path":          r.URL.Path,
			"status":        status,
			"errorCode":     string(stdErr.Code),
			"details":       stdErr.Details,
			"retryable":     stdErr.Retryable,
			"errorCategory": GetErrorCategory(stdErr.Code),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: stdErr})
}
