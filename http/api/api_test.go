package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/nightshift"
	"github.com/xy-planning-network/nightshift/assets"
	"github.com/xy-planning-network/nightshift/http/api"
	"github.com/xy-planning-network/nightshift/http/resp"
	"github.com/xy-planning-network/nightshift/http/router"
	"github.com/xy-planning-network/nightshift/logger"
	"github.com/xy-planning-network/nightshift/nav"
	"github.com/xy-planning-network/nightshift/views"
)

type server struct {
	http.Handler
	logs *bytes.Buffer
}

func newServer(t *testing.T, tbl *nav.Table) server {
	t.Helper()
	t.Setenv("SENTRY_DSN", "")

	if tbl == nil {
		lib := assets.New(fstest.MapFS{"js/about.4f2a9c.js": {Data: []byte("export default 'about'")}}, nil)
		var err error
		tbl, err = views.New("/public/", lib, nil)
		require.Nil(t, err)
	}

	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(log.New(b, "", 0)))
	h := api.New(tbl, resp.NewResponder(resp.WithLogger(l), resp.WithRootUrl("/public/")), l)

	rt := router.New(nightshift.Testing)
	rt.Subrouter("/api").HandleRoutes(h.Routes())

	return server{Handler: rt, logs: b}
}

func (s server) get(t *testing.T, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		r.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)

	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()

	var body struct {
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}
	require.Nil(t, json.NewDecoder(w.Body).Decode(&body))
	require.Empty(t, body.Error)
	require.Nil(t, json.Unmarshal(body.Data, into))
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	require.Nil(t, json.NewDecoder(w.Body).Decode(&body))

	return body.Error
}

func TestHealthz(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()

	// Act
	api.Healthz(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())
}

func TestVersion(t *testing.T) {
	// Arrange
	s := newServer(t, nil)

	// Act
	w := s.get(t, "/api/version")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var actual map[string]string
	decode(t, w, &actual)
	require.Equal(t, map[string]string{"version": "<undef>", "build": "<undef>", "date": "<undef>"}, actual)
}

func TestRoutes(t *testing.T) {
	type route struct {
		Path        string `json:"path"`
		Name        string `json:"name"`
		LoadMode    string `json:"loadMode"`
		RedirectsTo string `json:"redirectsTo"`
		Href        string `json:"href"`
	}

	for _, tc := range []struct {
		name     string
		target   string
		expected []route
	}{
		{
			"All",
			"/api/routes",
			[]route{
				{Path: "/", RedirectsTo: "/scanners"},
				{Path: "/scanners", Name: "scanners", LoadMode: "eager", Href: "/public/#/scanners"},
				{Path: "/objects", Name: "objects", LoadMode: "lazy", Href: "/public/#/objects"},
				{Path: "/triggers", Name: "triggers", LoadMode: "lazy", Href: "/public/#/triggers"},
				{Path: "/about", Name: "about", LoadMode: "lazy", Href: "/public/#/about"},
			},
		},
		{
			"Eager",
			"/api/routes?mode=eager",
			[]route{{Path: "/scanners", Name: "scanners", LoadMode: "eager", Href: "/public/#/scanners"}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			s := newServer(t, nil)

			// Act
			w := s.get(t, tc.target)

			// Assert
			require.Equal(t, http.StatusOK, w.Code)
			var actual []route
			decode(t, w, &actual)
			require.Equal(t, tc.expected, actual)
		})
	}

	// Act
	w := newServer(t, nil).get(t, "/api/routes?mode=sometimes")

	// Assert
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, errorOf(t, w), "mode")
}

func TestResolve(t *testing.T) {
	type resolved struct {
		Name       string              `json:"name"`
		Path       string              `json:"path"`
		Redirected bool                `json:"redirected"`
		LoadMode   string              `json:"loadMode"`
		Query      map[string][]string `json:"query"`
		Module     struct {
			Chunk string `json:"chunk"`
		} `json:"module"`
	}

	for _, tc := range []struct {
		name       string
		target     string
		expected   string
		redirected bool
		chunk      string
	}{
		{"Root-Path", "/api/resolve?path=/", "scanners", true, "js/scanners.js"},
		{"Path", "/api/resolve?path=/objects", "objects", false, "js/objects.js"},
		{"Url", "/api/resolve?url=%2Fpublic%2F%23%2Fabout", "about", false, "js/about.4f2a9c.js"},
		{"Url-Without-Fragment", "/api/resolve?url=%2Fpublic%2F", "scanners", true, "js/scanners.js"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			s := newServer(t, nil)

			// Act
			w := s.get(t, tc.target)

			// Assert
			require.Equal(t, http.StatusOK, w.Code)
			var actual resolved
			decode(t, w, &actual)
			require.Equal(t, tc.expected, actual.Name)
			require.Equal(t, "/"+tc.expected, actual.Path)
			require.Equal(t, tc.redirected, actual.Redirected)
			require.Equal(t, tc.chunk, actual.Module.Chunk)
		})
	}

	// Act
	w := newServer(t, nil).get(t, "/api/resolve?path=%2Fobjects%3Fnamespace%3Ddev")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var actual resolved
	decode(t, w, &actual)
	require.Equal(t, map[string][]string{"namespace": {"dev"}}, actual.Query)
}

func TestResolveFailures(t *testing.T) {
	broken, err := nav.New([]nav.Route{
		nav.RedirectRoute("/", "/about"),
		nav.LazyRoute("/about", "about", func(context.Context) (*nav.Module, error) {
			return nil, errors.New("chunk unavailable")
		}),
	})
	require.Nil(t, err)

	for _, tc := range []struct {
		name     string
		tbl      *nav.Table
		target   string
		code     int
		contains string
	}{
		{"No-Params", nil, "/api/resolve", http.StatusBadRequest, "url"},
		{"Relative-Path", nil, "/api/resolve?path=objects", http.StatusBadRequest, "path"},
		{"Not-Found", nil, "/api/resolve?path=/settings", http.StatusNotFound, "route not found"},
		{"Not-Found-Url", nil, "/api/resolve?url=%2Fpublic%2F%23%2Fsettings", http.StatusNotFound, "/settings"},
		{"Load-Failure", broken, "/api/resolve?path=/about", http.StatusBadGateway, "chunk unavailable"},
		{"Load-Failure-Url", broken, "/api/resolve?url=%2Fpublic%2F%23%2Fabout", http.StatusBadGateway, "chunk unavailable"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			s := newServer(t, tc.tbl)

			// Act
			w := s.get(t, tc.target)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Contains(t, errorOf(t, w), tc.contains)
			if tc.code >= http.StatusInternalServerError {
				require.Contains(t, s.logs.String(), "[ERROR]")
				require.Contains(t, s.logs.String(), `"nav":{"route":"/about"}`)
			} else {
				require.Empty(t, s.logs.String())
			}
		})
	}
}

func TestNavigate(t *testing.T) {
	for _, tc := range []struct {
		name     string
		target   string
		code     int
		expected map[string]string
	}{
		{
			"Scanners",
			"/api/navigate/scanners",
			http.StatusOK,
			map[string]string{"name": "scanners", "path": "/scanners", "href": "/public/#/scanners"},
		},
		{
			"Query",
			"/api/navigate/objects?namespace=dev",
			http.StatusOK,
			map[string]string{"name": "objects", "path": "/objects?namespace=dev", "href": "/public/#/objects?namespace=dev"},
		},
		{"Unknown", "/api/navigate/settings", http.StatusNotFound, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			s := newServer(t, nil)

			// Act
			w := s.get(t, tc.target)

			// Assert
			require.Equal(t, tc.code, w.Code)
			if tc.expected == nil {
				require.Contains(t, errorOf(t, w), "unknown route name")
				return
			}

			var actual map[string]string
			decode(t, w, &actual)
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestView(t *testing.T) {
	// Arrange
	s := newServer(t, nil)

	// Act
	w := s.get(t, "/api/views/about")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "export default 'about'", w.Body.String())
	require.Contains(t, w.Header().Get("Content-Type"), "javascript")
	require.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	etag := w.Header().Get("ETag")
	require.Len(t, etag, 66)

	// Act
	w = s.get(t, "/api/views/about", "If-None-Match", etag)

	// Assert
	require.Equal(t, http.StatusNotModified, w.Code)
	require.Zero(t, w.Body.Len())

	// Act
	w = s.get(t, "/api/views/settings")

	// Assert
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestViewLoadFailure(t *testing.T) {
	// Arrange
	broken, err := nav.New([]nav.Route{
		nav.RedirectRoute("/", "/about"),
		nav.LazyRoute("/about", "about", func(context.Context) (*nav.Module, error) {
			return nil, errors.New("chunk unavailable")
		}),
	})
	require.Nil(t, err)
	s := newServer(t, broken)

	// Act
	w := s.get(t, "/api/views/about")

	// Assert
	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Contains(t, errorOf(t, w), "chunk unavailable")
	require.Contains(t, s.logs.String(), `"nav":{"route":"/about","view":"about"}`)
}
