package server

// contextKey keeps request-scoped values from colliding with keys set by
// other packages sharing the same context.
type contextKey string

const (
	// contextKeyRequestID carries the correlation ID assigned or passed
	// through by the request-ID middleware.
	contextKeyRequestID contextKey = "requestID"

	// contextKeyAPIVersion carries the negotiated API version for the
	// current request.
	contextKeyAPIVersion contextKey = "apiVersion"
)
