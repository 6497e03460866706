package nav

import (
	"context"
	"net/url"
	"strings"
)

// A Resolved is the outcome of resolving a path to a view.
type Resolved struct {
	// Name is the symbolic name of the route resolved to.
	Name string `json:"name"`

	// Path is the canonical path of the route resolved to, after any redirects.
	Path string `json:"path"`

	// Requested is the path as it was asked for.
	Requested string `json:"requested"`

	// Redirected reports whether one or more redirects were followed.
	Redirected bool `json:"redirected"`

	LoadMode LoadMode   `json:"loadMode"`
	Module   *Module    `json:"module"`
	Query    url.Values `json:"query,omitempty"`
}

// Resolve matches path exactly against the Table, following redirects.
// A query after "?" is not part of the match and is returned in Resolved.Query.
//
// For a lazy route, Resolve waits until the view module is fetched or ctx is done.
// A fetch is never cancelled by ctx: it finishes in the background and is cached.
//
// Resolve fails with [ErrNotFound] if nothing matches
// and [ErrLazyModuleLoad] if fetching the view module failed.
func (t *Table) Resolve(ctx context.Context, path string) (*Resolved, error) {
	p, rawQuery, _ := strings.Cut(path, "?")
	return t.resolve(ctx, path, p, rawQuery)
}

// resolve matches p, already split from rawQuery, reporting requested as what was asked for.
func (t *Table) resolve(ctx context.Context, requested, p, rawQuery string) (*Resolved, error) {
	r, err := t.follow(p)
	if err != nil {
		return nil, err
	}

	res := &Resolved{
		Name:       r.Name,
		Path:       r.Path,
		Requested:  requested,
		Redirected: r.Path != p,
		LoadMode:   r.LoadMode,
	}

	if rawQuery != "" {
		// NOTE: keep whatever parsed; a malformed pair shouldn't block navigation
		res.Query, _ = url.ParseQuery(rawQuery)
	}

	v := r.Target.(View)
	if r.LoadMode == Eager {
		res.Module = v.Module
		return res, nil
	}

	m, err := t.load(ctx, r)
	if err != nil {
		return nil, err
	}

	res.Module = m
	return res, nil
}

// ResolveURL resolves the fragment of rawURL.
// See Fragment for what is considered the routable path.
// An escaped "?" (%3F) in the fragment's path is part of the path, not the start of a query.
func (t *Table) ResolveURL(ctx context.Context, rawURL string) (*Resolved, error) {
	p, rawQuery := splitFragment(rawURL)
	return t.resolve(ctx, Fragment(rawURL), p, rawQuery)
}

// Fragment returns the routable path in rawURL: everything after the first "#".
// The server-visible path and query before the marker are ignored.
// A missing or empty fragment is the root path "/".
//
// Fragment percent-decodes the path, except for "?", and leaves any query encoded,
// so the result can be passed to Resolve.
func Fragment(rawURL string) string {
	p, rawQuery := splitFragment(rawURL)
	p = strings.ReplaceAll(p, "?", "%3F")
	if rawQuery != "" {
		return p + "?" + rawQuery
	}

	return p
}

// splitFragment cuts the fragment of rawURL into its decoded path and raw query.
func splitFragment(rawURL string) (string, string) {
	_, frag, ok := strings.Cut(rawURL, "#")
	if !ok || frag == "" {
		return "/", ""
	}

	p, q, _ := strings.Cut(frag, "?")
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}

	if p == "" {
		p = "/"
	}

	return p, q
}
