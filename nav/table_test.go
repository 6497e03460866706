package nav_test

import (
	"context"
	"errors"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/nightshift"
	"github.com/xy-planning-network/nightshift/nav"
)

// countingLoader is a Loader counting its fetches.
// When gate is set, fetches block until it is closed.
type countingLoader struct {
	name  string
	count atomic.Int32
	gate  chan struct{}
	fail  atomic.Bool
}

func newCountingLoader(name string) *countingLoader { return &countingLoader{name: name} }

func (p *countingLoader) load(ctx context.Context) (*nav.Module, error) {
	p.count.Add(1)
	if p.gate != nil {
		<-p.gate
	}

	if p.fail.Load() {
		return nil, errors.New("chunk unavailable")
	}

	return &nav.Module{Name: p.name, Chunk: "js/" + p.name + ".js"}, nil
}

type dashboard struct {
	table    *nav.Table
	scanners *nav.Module
	loaders  map[string]*countingLoader
}

func newDashboard(t *testing.T, opts ...nav.TableOptFn) dashboard {
	t.Helper()

	d := dashboard{
		scanners: &nav.Module{Name: "scanners", Chunk: "js/scanners.js"},
		loaders: map[string]*countingLoader{
			"objects":  newCountingLoader("objects"),
			"triggers": newCountingLoader("triggers"),
			"about":    newCountingLoader("about"),
		},
	}

	tbl, err := nav.New(d.routes(), opts...)
	require.Nil(t, err)

	d.table = tbl
	return d
}

func (d dashboard) routes() []nav.Route {
	return []nav.Route{
		nav.RedirectRoute("/", "/scanners"),
		nav.EagerRoute("/scanners", "scanners", d.scanners),
		nav.LazyRoute("/objects", "objects", d.loaders["objects"].load),
		nav.LazyRoute("/triggers", "triggers", d.loaders["triggers"].load),
		nav.LazyRoute("/about", "about", d.loaders["about"].load),
	}
}

func TestNew(t *testing.T) {
	scanners := &nav.Module{Name: "scanners"}
	about := newCountingLoader("about").load
	root := nav.RedirectRoute("/", "/scanners")
	eager := nav.EagerRoute("/scanners", "scanners", scanners)

	for _, tc := range []struct {
		name     string
		routes   []nav.Route
		expected error
		path     string
	}{
		{"Valid", []nav.Route{root, eager}, nil, ""},
		{"Zero-Value", nil, nav.ErrInvalidRoute, ""},
		{"No-Root", []nav.Route{eager}, nav.ErrInvalidRoute, "/"},
		{
			"Root-Is-View",
			[]nav.Route{nav.EagerRoute("/", "home", scanners)},
			nav.ErrInvalidRoute,
			"/",
		},
		{
			"Duplicate-Path",
			[]nav.Route{root, eager, nav.EagerRoute("/scanners", "scanners-again", scanners)},
			nav.ErrDuplicateRoutePath,
			"/scanners",
		},
		{
			"Duplicate-Name",
			[]nav.Route{root, eager, nav.LazyRoute("/about", "scanners", about)},
			nav.ErrDuplicateRouteName,
			"/about",
		},
		{
			"Dangling-Redirect",
			[]nav.Route{nav.RedirectRoute("/", "/home"), eager},
			nav.ErrDanglingRedirect,
			"/home",
		},
		{
			"Empty-Redirect",
			[]nav.Route{nav.RedirectRoute("/", ""), eager},
			nav.ErrDanglingRedirect,
			"/",
		},
		{
			"Redirect-Cycle",
			[]nav.Route{root, eager, nav.RedirectRoute("/a", "/b"), nav.RedirectRoute("/b", "/a")},
			nav.ErrRedirectCycle,
			"/a -> /b -> /a",
		},
		{
			"Self-Redirect",
			[]nav.Route{root, eager, nav.RedirectRoute("/a", "/a")},
			nav.ErrRedirectCycle,
			"/a -> /a",
		},
		{
			"Relative-Path",
			[]nav.Route{root, eager, nav.LazyRoute("about", "about", about)},
			nav.ErrInvalidRoute,
			"about",
		},
		{
			"Hash-In-Path",
			[]nav.Route{root, eager, nav.LazyRoute("/about#team", "about", about)},
			nav.ErrInvalidRoute,
			"/about#team",
		},
		{
			"Nameless-View",
			[]nav.Route{root, eager, nav.LazyRoute("/about", "", about)},
			nav.ErrInvalidRoute,
			"/about",
		},
		{
			"Eager-Without-Module",
			[]nav.Route{root, nav.EagerRoute("/scanners", "scanners", nil)},
			nav.ErrInvalidRoute,
			"/scanners",
		},
		{
			"Lazy-Without-Loader",
			[]nav.Route{root, eager, nav.LazyRoute("/about", "about", nil)},
			nav.ErrInvalidRoute,
			"/about",
		},
		{
			"Bad-Load-Mode",
			[]nav.Route{root, eager, {Path: "/about", Name: "about", Target: nav.View{Loader: about}, LoadMode: "sometimes"}},
			nav.ErrInvalidRoute,
			"/about",
		},
		{
			"No-Target",
			[]nav.Route{root, eager, {Path: "/about", Name: "about"}},
			nav.ErrInvalidRoute,
			"/about",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			tbl, err := nav.New(tc.routes)

			// Assert
			if tc.expected == nil {
				require.Nil(t, err)
				require.NotNil(t, tbl)
				return
			}

			require.Nil(t, tbl)
			require.ErrorIs(t, err, tc.expected)
			require.ErrorIs(t, err, nightshift.ErrBadConfig)
			require.Contains(t, err.Error(), tc.path)
		})
	}
}

func TestNewRedirectChain(t *testing.T) {
	scanners := &nav.Module{Name: "scanners"}
	chain := func(hops int) []nav.Route {
		routes := []nav.Route{nav.RedirectRoute("/", "/r1")}
		for i := 1; i < hops; i++ {
			routes = append(routes, nav.RedirectRoute("/r"+itoa(i), "/r"+itoa(i+1)))
		}
		return append(routes, nav.RedirectRoute("/r"+itoa(hops), "/scanners"), nav.EagerRoute("/scanners", "scanners", scanners))
	}

	// Arrange + Act: "/" -> /r1 -> ... -> /r7 -> /scanners is 8 hops
	tbl, err := nav.New(chain(7))

	// Assert
	require.Nil(t, err)
	res, err := tbl.Resolve(context.Background(), "/")
	require.Nil(t, err)
	require.Equal(t, "/scanners", res.Path)
	require.True(t, res.Redirected)

	// Arrange + Act: 9 hops
	_, err = nav.New(chain(8))

	// Assert
	require.ErrorIs(t, err, nav.ErrRedirectCycle)
}

func TestNavigate(t *testing.T) {
	d := newDashboard(t)

	for _, tc := range []struct {
		name     string
		route    string
		query    url.Values
		expected string
		err      error
	}{
		{"Scanners", "scanners", nil, "/scanners", nil},
		{"About", "about", nil, "/about", nil},
		{"With-Query", "objects", url.Values{"namespace": {"dev"}}, "/objects?namespace=dev", nil},
		{"Empty-Query", "triggers", url.Values{}, "/triggers", nil},
		{"Unknown", "unknown-name", nil, "", nav.ErrUnknownRouteName},
		{"Zero-Value", "", nil, "", nav.ErrUnknownRouteName},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := d.table.Navigate(tc.route, tc.query)

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestHref(t *testing.T) {
	for _, tc := range []struct {
		name     string
		base     string
		expected string
	}{
		{"Default", "", "/#/objects?namespace=dev"},
		{"Public", "/public/", "/public/#/objects?namespace=dev"},
		{"No-Slashes", "public", "/public/#/objects?namespace=dev"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var opts []nav.TableOptFn
			if tc.base != "" {
				opts = append(opts, nav.WithBase(tc.base))
			}
			d := newDashboard(t, opts...)

			// Act
			actual, err := d.table.Href("objects", url.Values{"namespace": {"dev"}})

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expected, actual)
		})
	}

	_, err := newDashboard(t).table.Href("settings", nil)
	require.ErrorIs(t, err, nav.ErrUnknownRouteName)
}

func TestRoutes(t *testing.T) {
	// Arrange
	d := newDashboard(t)

	// Act
	routes := d.table.Routes()
	routes[0] = nav.Route{}

	// Assert
	require.Len(t, d.table.Routes(), 5)
	require.Equal(t, "/", d.table.Routes()[0].Path)
	require.Equal(t, "/scanners", d.table.Routes()[0].RedirectsTo())
	require.True(t, d.table.Routes()[0].IsRedirect())
	require.False(t, d.table.Routes()[1].IsRedirect())
}

func itoa(i int) string {
	return string(rune('0' + i))
}
