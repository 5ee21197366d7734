package restmachinery

import (
	"net/http"
	"time"

	"github.com/golang/glog"
)

// Filter is an interface to be implemented by components that can wrap a
// new http.HandlerFunc around another http.HandlerFunc.
type Filter interface {
	// Decorate decorates one http.HandlerFunc with another
	Decorate(http.HandlerFunc) http.HandlerFunc
}

type requestLogFilter struct {
	logf func(format string, args ...interface{})
}

// NewRequestLogFilter returns a Filter that logs the method, path, status
// code, and duration of every request it decorates.
func NewRequestLogFilter() Filter {
	return &requestLogFilter{
		logf: glog.Infof,
	}
}

func (r *requestLogFilter) Decorate(handle http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		sw := &statusRecordingResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}
		handle(sw, req)
		r.logf(
			"%s %s %d %s",
			req.Method,
			req.URL.Path,
			sw.statusCode,
			time.Since(start),
		)
	}
}

type statusRecordingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (s *statusRecordingResponseWriter) WriteHeader(statusCode int) {
	s.statusCode = statusCode
	s.ResponseWriter.WriteHeader(statusCode)
}
