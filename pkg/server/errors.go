package server

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gitopskit/strata/pkg/errors"
	"github.com/gitopskit/strata/pkg/serializer"
	"github.com/google/uuid"
)

// ErrorResponse is the JSON error envelope for every API error.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// writeError writes a structured error response. Codes come from the shared
// error taxonomy so API clients and CLI users see the same vocabulary.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, statusCode int,
	code errors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// writeStructuredError maps a StructuredError from the core packages onto an
// HTTP error response, carrying its code and context through to the client.
func (s *Server) writeStructuredError(w http.ResponseWriter, r *http.Request, statusCode int, err error) {
	var serr *errors.StructuredError
	if stderrors.As(err, &serr) {
		s.writeError(w, r, statusCode, serr.Code, serr.Message, false, serr.Context)
		return
	}
	s.writeError(w, r, statusCode, errors.ErrCodeInternal, err.Error(), false, nil)
}
