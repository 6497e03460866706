package shell

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/nightshift/assets"
	"github.com/xy-planning-network/nightshift/http/middleware"
	"github.com/xy-planning-network/nightshift/http/resp"
	"github.com/xy-planning-network/nightshift/http/router"
	"github.com/xy-planning-network/nightshift/logger"
	"github.com/xy-planning-network/nightshift/nav"
	"github.com/xy-planning-network/nightshift/views"
)

// A Shell manages and exposes all components of the dashboard to one another.
type Shell struct {
	*resp.Responder
	*router.Router

	cfg        Config
	ctx        context.Context
	httpL      logger.Logger
	l          logger.Logger
	lib        *assets.Library
	srv        *http.Server
	table      *nav.Table
	userAssets fs.FS
}

// New constructs a Shell from the provided options,
// reading anything the options leave unset from environment variables.
//
// New fails with an error wrapping nightshift.ErrBadConfig
// if the route table or the Config is invalid,
// or the eager view cannot be read.
func New(opts ...Option) (*Shell, error) {
	s := &Shell{cfg: NewConfig()}
	followups := make([]OptFollowup, 0)

	for _, opt := range opts {
		fn, err := opt(s)
		if err != nil {
			return nil, asBadConfig(err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	if err := s.setup(); err != nil {
		return nil, asBadConfig(err)
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, asBadConfig(err)
		}
	}

	defaultRoutes(s)

	return s, nil
}

// setup constructs every component an Option did not set.
func (s *Shell) setup() error {
	if err := s.cfg.Valid(); err != nil {
		return err
	}

	if s.ctx == nil {
		s.ctx = context.Background()
	}

	if s.l == nil {
		s.l = defaultLogger(s.cfg)
	}

	if s.httpL == nil {
		s.httpL = defaultLogger(s.cfg)
	}

	s.lib = newLibrary(s)

	tbl, err := views.New(s.cfg.BaseURL, s.lib, s.l)
	if err != nil {
		return err
	}
	s.table = tbl
	// every route below mounts under the same base the Table builds hrefs from
	s.cfg.BaseURL = tbl.Base()

	if s.cfg.PreloadViews {
		preload(s.ctx, s)
	}

	s.Responder = defaultResponder(s.l, s.cfg.BaseURL)
	s.Router = defaultRouter(s.cfg, s.httpL)

	if s.srv == nil {
		s.srv = defaultServer(s.ctx, s.cfg)
	}

	return nil
}

func (s *Shell) Config() Config            { return s.cfg }
func (s *Shell) EmitLogger() logger.Logger { return s.l }
func (s *Shell) EmitTable() *nav.Table     { return s.table }

// Handler is the dashboard's http.Handler: every route,
// answering cross-origin requests when Config.CORSOrigin is set.
func (s *Shell) Handler() http.Handler {
	return middleware.CORS(s.cfg.CORSOrigin)(s.Router)
}

// Guide begins the web server.
//
// These, the context passed to WithContext being done, and (*Shell).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
//
// Guide returns an error if the server could not listen.
func (s *Shell) Guide() error {
	ctx, stop := signal.NotifyContext(
		s.ctx,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer stop()

	s.srv.Handler = s.Handler()

	errCh := make(chan error, 1)
	go func() {
		var err error
		if s.cfg.EnableTLS {
			s.l.Info(fmt.Sprintf("running web server at https://%s%s", s.srv.Addr, s.cfg.BaseURL), nil)
			err = s.srv.ListenAndServeTLS(s.cfg.CertFile, s.cfg.KeyFile)
		} else {
			s.l.Info(fmt.Sprintf("running web server at http://%s%s", s.srv.Addr, s.cfg.BaseURL), nil)
			err = s.srv.ListenAndServe()
		}

		if !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not listen: %w", err)
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.l.Error(err.Error(), nil)
			return err
		}

		return nil

	case <-ctx.Done():
		s.l.Info("stop requested", nil)
		return s.Shutdown()
	}
}

// Shutdown shutdowns the web server.
func (s *Shell) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.l.Info("shutting down web server", nil)
	if err := s.srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	s.l.Info("web server shutdown successfully", nil)
	return nil
}
