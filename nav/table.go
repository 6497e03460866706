package nav

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/xy-planning-network/nightshift"
	"github.com/xy-planning-network/nightshift/logger"
	"golang.org/x/sync/singleflight"
)

// MaxRedirects is the most redirects a single resolution follows.
const MaxRedirects = 8

// A Table is a validated, immutable route table.
//
// A Table is safe for concurrent use.
type Table struct {
	base   string
	l      logger.Logger
	routes []Route
	byName map[string]int
	byPath map[string]int

	flights singleflight.Group
	mu      sync.RWMutex
	loaded  map[string]*Module
}

// A TableOptFn configures a Table when constructing a new one.
type TableOptFn func(*Table)

// WithBase sets the address prefix prepended to links generated by Href.
// The base is never part of the matching key.
func WithBase(base string) TableOptFn {
	return func(t *Table) {
		t.base = normalizeBase(base)
	}
}

// WithLogger sets the logger.Logger reporting lazy loading.
func WithLogger(l logger.Logger) TableOptFn {
	return func(t *Table) {
		t.l = l
	}
}

// New validates routes and constructs a Table from them.
//
// New fails with an error wrapping [nightshift.ErrBadConfig] and one of
// [ErrInvalidRoute], [ErrDuplicateRoutePath], [ErrDuplicateRouteName],
// [ErrDanglingRedirect] or [ErrRedirectCycle] naming the offending path.
// Such a failure must abort startup.
func New(routes []Route, opts ...TableOptFn) (*Table, error) {
	t := &Table{
		base:   "/",
		routes: make([]Route, 0, len(routes)),
		byName: make(map[string]int),
		byPath: make(map[string]int),
		loaded: make(map[string]*Module),
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := t.register(routes); err != nil {
		return nil, fmt.Errorf("%w: %w", nightshift.ErrBadConfig, err)
	}

	if t.l != nil {
		t.l.Debug(fmt.Sprintf("registered %d routes under %s", len(t.routes), t.base), nil)
	}

	return t, nil
}

// register adds each route, rejecting the first offender,
// then proves every redirect lands on a view.
func (t *Table) register(routes []Route) error {
	for _, r := range routes {
		if err := validRoute(r); err != nil {
			return err
		}

		if _, ok := t.byPath[r.Path]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateRoutePath, r.Path)
		}

		if r.Name != "" {
			if i, ok := t.byName[r.Name]; ok {
				return fmt.Errorf("%w: %s used by %s and %s", ErrDuplicateRouteName, r.Name, t.routes[i].Path, r.Path)
			}
			t.byName[r.Name] = len(t.routes)
		}

		t.byPath[r.Path] = len(t.routes)
		t.routes = append(t.routes, r)
	}

	root, ok := t.byPath["/"]
	if !ok {
		return fmt.Errorf("%w: no route for /", ErrInvalidRoute)
	}

	if !t.routes[root].IsRedirect() {
		return fmt.Errorf("%w: / must redirect", ErrInvalidRoute)
	}

	for _, r := range t.routes {
		if !r.IsRedirect() {
			continue
		}

		if _, err := t.follow(r.Path); err != nil {
			return err
		}
	}

	return nil
}

// follow walks redirects starting at path until it reaches a view.
func (t *Table) follow(path string) (Route, error) {
	chain := []string{path}
	seen := map[string]bool{path: true}
	cur := path
	for hops := 0; ; hops++ {
		i, ok := t.byPath[cur]
		if !ok && hops == 0 {
			return Route{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}

		if !ok {
			return Route{}, fmt.Errorf("%w: %s", ErrDanglingRedirect, strings.Join(chain, " -> "))
		}

		r := t.routes[i]
		if !r.IsRedirect() {
			return r, nil
		}

		next := r.RedirectsTo()
		chain = append(chain, next)
		if seen[next] {
			return Route{}, fmt.Errorf("%w: %s", ErrRedirectCycle, strings.Join(chain, " -> "))
		}

		if hops == MaxRedirects {
			return Route{}, fmt.Errorf("%w: %s exceeds %d hops", ErrRedirectCycle, path, MaxRedirects)
		}

		seen[next] = true
		cur = next
	}
}

func validRoute(r Route) error {
	if r.Path == "" || r.Path[0] != '/' {
		return fmt.Errorf("%w: path %q must begin with /", ErrInvalidRoute, r.Path)
	}

	if strings.ContainsAny(r.Path, "#?") {
		return fmt.Errorf("%w: path %s must not contain # or ?", ErrInvalidRoute, r.Path)
	}

	switch tgt := r.Target.(type) {
	case Redirect:
		if tgt.To == "" {
			return fmt.Errorf("%w: %s -> \"\"", ErrDanglingRedirect, r.Path)
		}

		if r.LoadMode != "" {
			return fmt.Errorf("%w: redirect %s cannot have a load mode", ErrInvalidRoute, r.Path)
		}

	case View:
		if r.Name == "" {
			return fmt.Errorf("%w: view %s has no name", ErrInvalidRoute, r.Path)
		}

		if err := r.LoadMode.Valid(); err != nil {
			return fmt.Errorf("%w: %s: %s", ErrInvalidRoute, r.Path, err)
		}

		if r.LoadMode == Eager && tgt.Module == nil {
			return fmt.Errorf("%w: eager view %s has no module", ErrInvalidRoute, r.Path)
		}

		if r.LoadMode == Lazy && tgt.Loader == nil {
			return fmt.Errorf("%w: lazy view %s has no loader", ErrInvalidRoute, r.Path)
		}

	default:
		return fmt.Errorf("%w: %s has no target", ErrInvalidRoute, r.Path)
	}

	return nil
}

// Base returns the address prefix links are generated under.
func (t *Table) Base() string { return t.base }

// Routes returns the declared routes in declaration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Navigate looks up the route named name and returns its canonical path.
// query, if any, is encoded onto the path.
//
// Navigate fails with [ErrUnknownRouteName] if no route carries name.
func (t *Table) Navigate(name string, query url.Values) (string, error) {
	i, ok := t.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRouteName, name)
	}

	p := t.routes[i].Path
	if len(query) > 0 {
		p += "?" + query.Encode()
	}

	return p, nil
}

// Href is Navigate formatted as a link: the base, the hash marker, then the path.
func (t *Table) Href(name string, query url.Values) (string, error) {
	p, err := t.Navigate(name, query)
	if err != nil {
		return "", err
	}

	return t.base + "#" + p, nil
}

func normalizeBase(base string) string {
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}

	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return base
}
