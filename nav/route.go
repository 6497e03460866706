package nav

import (
	"context"
	"fmt"

	"github.com/xy-planning-network/nightshift"
)

var _ nightshift.Enumerable = LoadMode("")

// A LoadMode decides when a view module becomes available.
type LoadMode string

const (
	// Eager view modules ship with the initial bundle.
	Eager LoadMode = "eager"

	// Lazy view modules are fetched on first navigation and cached thereafter.
	Lazy LoadMode = "lazy"
)

func (lm LoadMode) String() string { return string(lm) }

func (lm LoadMode) Valid() error {
	switch lm {
	case Eager, Lazy:
		return nil
	default:
		return fmt.Errorf("%w: LoadMode %q", nightshift.ErrNotValid, string(lm))
	}
}

// A Module is a loaded view module.
type Module struct {
	Name        string `json:"name"`
	Chunk       string `json:"chunk"`
	ContentType string `json:"contentType"`
	Content     []byte `json:"-"`
	Hash        string `json:"hash"`
}

// A Loader fetches a lazy view module.
type Loader func(ctx context.Context) (*Module, error)

// A Target is where a Route points: either a Redirect or a View.
type Target interface {
	target()
}

// A Redirect sends resolution on to another route's path.
type Redirect struct {
	To string
}

func (Redirect) target() {}

// A View points a Route at a view module.
// Eager views set Module; lazy views set Loader.
type View struct {
	Module *Module
	Loader Loader
}

func (View) target() {}

// A Route maps a URL fragment to a Target.
//
// Name is empty only for redirects.
type Route struct {
	Path     string
	Name     string
	Target   Target
	LoadMode LoadMode
}

// RedirectRoute constructs a Route redirecting from to to.
func RedirectRoute(from, to string) Route {
	return Route{Path: from, Target: Redirect{To: to}}
}

// EagerRoute constructs a Route whose view module is already available.
func EagerRoute(path, name string, m *Module) Route {
	return Route{Path: path, Name: name, Target: View{Module: m}, LoadMode: Eager}
}

// LazyRoute constructs a Route whose view module is fetched with fn on first navigation.
func LazyRoute(path, name string, fn Loader) Route {
	return Route{Path: path, Name: name, Target: View{Loader: fn}, LoadMode: Lazy}
}

// IsRedirect asserts whether the Route redirects elsewhere.
func (r Route) IsRedirect() bool {
	_, ok := r.Target.(Redirect)
	return ok
}

// RedirectsTo returns the destination of a redirect Route or "".
func (r Route) RedirectsTo() string {
	if rd, ok := r.Target.(Redirect); ok {
		return rd.To
	}

	return ""
}
