package request

import (
	"errors"
	"net/http"
)

// ErrInternalServer is the error reported to clients when a handler fails.
var ErrInternalServer = errors.New("internal server error")

// ClientWriter is a response writer that remembers the status code that was written.
type ClientWriter struct {
	http.ResponseWriter
	statusCode int
}

// NewClientWriter wraps the response writer.
func NewClientWriter(w http.ResponseWriter) *ClientWriter {
	return &ClientWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (c *ClientWriter) WriteHeader(code int) {
	c.statusCode = code
	c.ResponseWriter.WriteHeader(code)
}

// StatusCode returns the status code that was written. It is 200 when none was written explicitly.
func (c *ClientWriter) StatusCode() int {
	return c.statusCode
}
