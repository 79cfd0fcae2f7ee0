// internal/app/features/errors/errlog.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs structured logging with user-facing error rendering so
// handlers report failures in one call. Internal detail goes to the log;
// the user sees only the friendly message.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger backed by the given logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogBadRequest logs a client error and renders the forbidden page with
// the user-facing message.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, detail string, err error, userMsg, backURL string) {
	e.log.Warn(detail,
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.Error(err))
	RenderForbidden(w, r, userMsg, backURL)
}

// LogServerError logs an internal failure and renders the retry card.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, detail string, err error, userMsg string) {
	e.log.Error(detail,
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.Error(err))
	RenderRetry(w, r, userMsg)
}

// LogDBError logs a data-store failure and renders the retry card with a
// generic message. Store errors never reach the user verbatim.
func (e *ErrorLogger) LogDBError(w http.ResponseWriter, r *http.Request, detail string, err error) {
	e.log.Error(detail,
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.Error(err))
	RenderRetry(w, r, "")
}
