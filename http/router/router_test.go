package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/nightshift"
	"github.com/xy-planning-network/nightshift/http/middleware"
	"github.com/xy-planning-network/nightshift/http/router"
)

func header(key, val string) middleware.Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add(key, val)
			h.ServeHTTP(w, r)
		})
	}
}

func ok(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestHandleRoutes(t *testing.T) {
	// Arrange
	rt := router.New(nightshift.Testing)
	rt.OnEveryRequest(header("X-Order", "every"))
	rt.HandleRoutes(
		[]router.Route{{Path: "/healthz", Method: http.MethodGet, Handler: ok, Middlewares: []middleware.Adapter{header("X-Order", "route")}}},
		header("X-Order", "group"),
	)

	for _, tc := range []struct {
		name     string
		method   string
		path     string
		expected int
	}{
		{"Get", http.MethodGet, "/healthz", http.StatusOK},
		{"Head", http.MethodHead, "/healthz", http.StatusOK},
		{"Post", http.MethodPost, "/healthz", http.StatusMethodNotAllowed},
		{"Unknown", http.MethodGet, "/settings", http.StatusNotFound},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()

			// Act
			rt.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			// Assert
			require.Equal(t, tc.expected, w.Code)
			if tc.expected == http.StatusOK {
				require.Equal(t, []string{"every", "group", "route"}, w.Header().Values("X-Order"))
			}
		})
	}
}

func TestHandleNotFound(t *testing.T) {
	// Arrange
	rt := router.New(nightshift.Testing)
	rt.OnEveryRequest(header("X-Every", "1"))
	rt.HandleNotFound(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	w := httptest.NewRecorder()

	// Act
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/settings", nil))

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
	require.Equal(t, "1", w.Header().Get("X-Every"))
}

func TestSubrouter(t *testing.T) {
	// Arrange
	rt := router.New(nightshift.Testing)
	rt.OnEveryRequest(header("X-Every", "1"))
	api := rt.Subrouter("/api")
	api.Handle(router.Route{Path: "/routes", Method: http.MethodGet, Handler: ok})
	w := httptest.NewRecorder()

	// Act
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/routes", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "1", w.Header().Get("X-Every"))

	// Act
	w = httptest.NewRecorder()
	rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/routes", nil))

	// Assert
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatic(t *testing.T) {
	// Arrange
	rt := router.New(nightshift.Testing)
	rt.Static("/public", fstest.MapFS{
		"index.html":         {Data: []byte("<div id=app></div>")},
		"js/about.4f2a9c.js":    {Data: []byte("export default {}")},
	})

	for _, tc := range []struct {
		name     string
		path     string
		code     int
		cache    string
		contains string
	}{
		{"Index", "/public/", http.StatusOK, "no-cache", "id=app"},
		{"Chunk", "/public/js/about.4f2a9c.js", http.StatusOK, "max-age=2592000", "export default"},
		{"Missing", "/public/js/settings.js", http.StatusNotFound, "", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()

			// Act
			rt.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))

			// Assert
			require.Equal(t, tc.code, w.Code)
			if tc.cache != "" {
				require.Equal(t, tc.cache, w.Header().Get("Cache-Control"))
			}
			require.Contains(t, w.Body.String(), tc.contains)
		})
	}
}
