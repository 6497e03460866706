package logger

import (
	"encoding"
	"encoding/json"
	"fmt"
	"net/http"
)

var (
	_ encoding.TextMarshaler = LogContext{}
)

// A LogContext provides additional information for a [Logger] method
// that cannot be tersely captured in the message itself.
type LogContext struct {
	// Route is the dashboard path being navigated to, e.g., /objects.
	Route string

	// View names the view the route renders, e.g., objects.
	View string

	// LoadMode is how the view's module is loaded: eager or lazy.
	LoadMode string

	// Data is any information pertinent at the time of the logging event.
	Data map[string]any

	// Error is the error that may or may not have instigated a logging event.
	Error error

	// Request is the *http.Request that may or may not have been open during the logging event.
	Request *http.Request
}

// navigation reports whether lc says anything about where the dashboard was navigating.
func (lc LogContext) navigation() bool {
	return lc.Route != "" || lc.View != "" || lc.LoadMode != ""
}

// MarshalText converts LogContext into a JSON object,
// leaving out zero-value fields.
// Route, View, and LoadMode are grouped under "nav".
//
// Values in LogContext.Data that cannot be represented in JSON cause an error.
//
// MarshalText implements [encoding.TextMarshaler].
func (lc LogContext) MarshalText() ([]byte, error) {
	m := make(map[string]any)
	if lc.navigation() {
		nav := make(map[string]string)
		for k, v := range map[string]string{"route": lc.Route, "view": lc.View, "load_mode": lc.LoadMode} {
			if v != "" {
				nav[k] = v
			}
		}

		m["nav"] = nav
	}

	if lc.Data != nil {
		m["data"] = lc.Data
	}

	if lc.Error != nil {
		m["error"] = lc.Error.Error()
	}

	if lc.Request != nil {
		r := map[string]any{
			"method": lc.Request.Method,
			"url":    lc.Request.URL.String(),
		}
		if id := lc.Request.Header.Get("X-Request-Id"); id != "" {
			r["id"] = id
		}

		m["request"] = r
	}

	return json.Marshal(m)
}

// String renders LogContext as JSON.
func (lc LogContext) String() string {
	b, err := lc.MarshalText()
	if err != nil {
		return fmt.Sprintf("{%q:%q}", "marshal_error", err)
	}

	return string(b)
}
