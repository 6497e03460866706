package resp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/xy-planning-network/nightshift/logger"
)

// Responder maintains reusable pieces for responding to HTTP requests.
// These are the forms of response Responder can execute:
//
//	Err
//	Json
//	Raw
//	Redirect
//
// When handling a specific HTTP request, calling code supplies additional data, structure,
// and so forth through Fn functions.
type Responder struct {
	logger logger.Logger

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool

	// Root URL Redirect falls back to
	rootUrl *url.URL
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	return d
}

// Err wraps http.Error(), logging the error causing the failure state.
//
// The default status code is 500; set another with Code after Err in opts
// or, more conveniently, as the only option.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	rr, nested := doer.do(w, r, append([]Fn{Err(err)}, opts...)...)
	if nested != nil {
		err = fmt.Errorf("%w: %s", err, nested)
	}

	var msg string
	if err != nil {
		msg = err.Error()
	}

	code := http.StatusInternalServerError
	if rr != nil && rr.code != 0 {
		code = rr.code
	}

	http.Error(w, msg, code)
}

type jsonSchema struct {
	D any    `json:"data,omitempty"`
	E string `json:"error,omitempty"`
}

// Json responds with data in JSON format, setting appropriate headers.
//
// The JSON schema looks like this:
//
//	{
//		"data": {}
//	}
//
// Data() calls populate "data".
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	payload := jsonSchema{D: rr.data}
	if e, ok := rr.data.(error); ok {
		payload = jsonSchema{E: e.Error()}
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(payload); err != nil {
		doer.Err(w, r, err)
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(rr.code)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

// Raw responds with the []byte set by Data.
// Set the Content-Type with Header.
func (doer *Responder) Raw(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	b, ok := rr.data.([]byte)
	if !ok {
		return fmt.Errorf("%w: Raw requires Data([]byte), got %T", ErrInvalid, rr.data)
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	w.WriteHeader(rr.code)
	if r.Method == http.MethodHead {
		return nil
	}

	_, err = w.Write(b)
	return err
}

// Redirect calls http.Redirect, given Url() set the redirect destination.
// If Url() is not passed in opts, then ToRoot() sets the redirect destination.
//
// The default response status code is 302.
//
// If Code() set the status code to something other than standard redirect 3xx statuses,
// Redirect overwrites the status code with an appropriate 3xx status code.
func (doer *Responder) Redirect(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.url == nil {
		if err := ToRoot()(*doer, rr); err != nil {
			return fmt.Errorf("cannot redirect: %w", err)
		}
	}

	switch {
	case rr.code >= http.StatusMultipleChoices && rr.code <= http.StatusPermanentRedirect:
		// NOTE(dlk): code is already a 3xx, so do nothing
	case rr.code >= http.StatusBadRequest && rr.code < http.StatusInternalServerError:
		rr.code = http.StatusSeeOther
	case rr.code >= http.StatusInternalServerError:
		rr.code = http.StatusTemporaryRedirect
	default:
		rr.code = http.StatusFound
	}

	http.Redirect(w, r, rr.url.String(), rr.code)
	return nil
}

// do applies all options to the passed in http.ResponseWriter and *http.Request,
// stopping at the first returning an error.
//
// Headers set by options are copied onto w.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{
		r:       r,
		headers: make(http.Header),
	}

	for _, opt := range opts {
		select {
		case <-r.Context().Done():
			return resp, fmt.Errorf("%w", ErrDone)
		default:
			if err := opt(*doer, resp); err != nil {
				return resp, err
			}
		}
	}

	for k, vals := range resp.headers {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}

	return resp, nil
}
