package resp

import (
	"net/url"

	"github.com/xy-planning-network/nightshift/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logger.New configures one.
func WithLogger(log logger.Logger) func(*Responder) {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithRootUrl sets the provided URL after parsing it into a *url.URL
// as the fallback destination of Redirect.
//
// If the URL cannot be parsed, the root URL is not set.
func WithRootUrl(u string) func(*Responder) {
	return func(d *Responder) {
		parsed, err := url.Parse(u)
		if err != nil {
			return
		}

		d.rootUrl = parsed
	}
}
