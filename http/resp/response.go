package resp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/nightshift/logger"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	r       *http.Request
	code    int
	data    any
	headers http.Header
	url     *url.URL
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Data stores the provided value for writing to the client.
//
// Used with Responder.Json and Responder.Raw, where it must be a []byte.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err sets the status code http.StatusInternalServerError and logs the error.
// Use Code after Err to respond with another status.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if e != nil {
			d.logger.Error(e.Error(), &logger.LogContext{Error: e, Request: r.r})
		}

		return Code(http.StatusInternalServerError)(d, r)
	}
}

// Header sets the response header key to val.
func Header(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		r.headers.Set(key, val)
		return nil
	}
}

// Url parses raw the URL string and sets it in the *Response if successful.
//
// Used with Responder.Redirect.
func Url(u string) Fn {
	return func(_ Responder, r *Response) error {
		parsed, err := url.Parse(u)
		if err != nil {
			return fmt.Errorf("%w: u is not a valid URL: %v", ErrInvalid, err)
		}

		r.url = parsed
		return nil
	}
}

// ToRoot sets the URL to the root URL the Responder was set up with.
//
// Used with Responder.Redirect.
func ToRoot() Fn {
	return func(d Responder, r *Response) error {
		if d.rootUrl == nil {
			return fmt.Errorf("%w: no root url", ErrMissingData)
		}

		r.url = d.rootUrl
		return nil
	}
}
