package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xy-planning-network/nightshift"
	"github.com/xy-planning-network/nightshift/logger"
)

// statusWriter records the status and size of a response.
type statusWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// LogRequest logs the request's originating IP address, method, requested URL,
// response status, response size and duration
// using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following query keys:
// - password
// - token
//
// Requests for any of the skip paths, e.g., /healthz, are not logged.
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger, skip ...string) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	nolog := make(map[string]bool)
	for _, s := range skip {
		nolog[s] = true
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			h.ServeHTTP(sw, r)
			if nolog[r.URL.Path] {
				return
			}

			uri := r.URL.Path
			q := r.URL.Query()
			nightshift.Mask(q, "password")
			nightshift.Mask(q, "token")
			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			ip, _ := r.Context().Value(nightshift.IpAddrKey).(string)
			if ip == "" {
				ip = "-"
			}

			if sw.status == 0 {
				sw.status = http.StatusOK
			}

			data := map[string]any{nightshift.LogKindKey: nightshift.HTTPLogKind}
			if id, ok := r.Context().Value(nightshift.RequestIDKey).(string); ok {
				data["requestId"] = id
			}

			ls.Info(
				fmt.Sprintf("%s %s %s %d %d %s", ip, r.Method, uri, sw.status, sw.size, time.Since(start)),
				&logger.LogContext{Data: data},
			)
		})
	}
}
