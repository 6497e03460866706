package shell

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/xy-planning-network/nightshift"
	"github.com/xy-planning-network/nightshift/assets"
	"github.com/xy-planning-network/nightshift/http/api"
	"github.com/xy-planning-network/nightshift/http/middleware"
	"github.com/xy-planning-network/nightshift/http/resp"
	"github.com/xy-planning-network/nightshift/http/router"
	"github.com/xy-planning-network/nightshift/logger"
	"github.com/xy-planning-network/nightshift/metrics"
	"golang.org/x/time/rate"
)

// defaultLogger constructs a logger.Logger at the environment and level cfg sets.
func defaultLogger(cfg Config) logger.Logger {
	return logger.New(
		logger.WithEnv(cfg.Env.String()),
		logger.WithLevel(cfg.LogLevel),
	)
}

// defaultAssets opens the client build in dir.
// If dir does not exist, nil returns and only the fallback build is used.
func defaultAssets(dir string, l logger.Logger) fs.FS {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		l.Warn(fmt.Sprintf("no client build at %s, serving the fallback build", dir), &logger.LogContext{
			Data:  map[string]any{nightshift.LogKindKey: nightshift.AppLogKind},
			Error: err,
		})

		return nil
	}

	l.Debug(fmt.Sprintf("serving client build from %s", dir), nil)
	return os.DirFS(dir)
}

// preload fetches every lazy view module.
// Failures are logged, not returned: a view failing to load is retried when navigated to.
func preload(ctx context.Context, s *Shell) {
	if err := s.table.Preload(ctx); err != nil {
		s.l.Warn("preloading views", &logger.LogContext{
			Data:  map[string]any{nightshift.LogKindKey: nightshift.NavLogKind},
			Error: err,
		})

		return
	}

	s.l.Info("preloaded views", nil)
}

// defaultResponder configures the [*resp.Responder] to be used by http.Handlers.
func defaultResponder(l logger.Logger, baseURL string) *resp.Responder {
	return resp.NewResponder(resp.WithLogger(l), resp.WithRootUrl(baseURL))
}

// defaultRouter constructs a [*router.Router] applying the standard middlewares to every request.
func defaultRouter(cfg Config, httpL logger.Logger) *router.Router {
	rt := router.New(cfg.Env)
	rt.OnEveryRequest(
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(httpL, "/healthz"),
	)

	return rt
}

// defaultRoutes registers the dashboard's endpoints:
//
//   - / redirects to the base URL
//   - /healthz
//   - /metrics
//   - /api/...
//   - the single page app under the base URL
func defaultRoutes(s *Shell) {
	base := s.cfg.BaseURL
	s.HandleNotFound(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Accept"), "text/html") && r.URL.Path != base {
			s.Redirect(w, r, resp.ToRoot())
			return
		}

		w.WriteHeader(http.StatusNotFound)
	})

	routes := []router.Route{
		{Path: "/healthz", Method: http.MethodGet, Handler: api.Healthz},
		{Path: "/metrics", Method: http.MethodGet, Handler: metrics.Handler().ServeHTTP},
	}

	// NOTE: with the app served from /, the static file server handles / itself
	if base != "/" {
		routes = append(routes, router.Route{
			Path:   "/",
			Method: http.MethodGet,
			Handler: func(w http.ResponseWriter, r *http.Request) {
				s.Redirect(w, r, resp.Code(http.StatusTemporaryRedirect))
			},
		})
	}
	s.HandleRoutes(routes)

	var visitors *middleware.Visitors
	if s.cfg.APIRateLimit > 0 {
		visitors = middleware.NewVisitors(rate.Limit(s.cfg.APIRateLimit), max(s.cfg.APIRateBurst, 1))
	}

	s.Subrouter("/api").HandleRoutes(
		api.New(s.table, s.Responder, s.l).Routes(),
		middleware.RateLimit(visitors),
	)

	s.Static(base, s.lib.FS())
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context, cfg Config) *http.Server {
	return &http.Server{
		Addr:         cfg.ListenAddr,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// newLibrary constructs the *assets.Library for the Shell.
func newLibrary(s *Shell) *assets.Library {
	fsys := s.userAssets
	if fsys == nil {
		fsys = defaultAssets(s.cfg.AssetsDir, s.l)
	}

	return assets.New(fsys, s.l)
}

// asBadConfig marks err as a configuration error unless it already is one.
func asBadConfig(err error) error {
	if errors.Is(err, nightshift.ErrBadConfig) {
		return err
	}

	return fmt.Errorf("%w: %w", nightshift.ErrBadConfig, err)
}
