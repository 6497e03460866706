package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/nightshift"
)

// RequestIDHeader carries the request id on requests and responses.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under nightshift.RequestIDKey
// and echoes it in the X-Request-Id header.
//
// An X-Request-Id sent by the client is reused if it parses as a uuid.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)
			r = r.Clone(context.WithValue(r.Context(), nightshift.RequestIDKey, id))
			r.Header.Set(RequestIDHeader, id)
			h.ServeHTTP(w, r)
		})
	}
}
