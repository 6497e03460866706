package shell

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/xy-planning-network/nightshift/http/middleware"
	"github.com/xy-planning-network/nightshift/logger"
)

// An Option configures a *Shell either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some Options require components New only builds after every Option has been called,
// and so return an OptFollowup that New calls once those components exist.
//
// WithLogger is an example of the first.
// WithMiddlewares is an example of the second.
type Option func(s *Shell) (OptFollowup, error)
type OptFollowup func() error

// WithAssets serves the client build from fsys instead of [Config.AssetsDir].
func WithAssets(fsys fs.FS) Option {
	return func(s *Shell) (OptFollowup, error) {
		s.userAssets = fsys
		return nil, nil
	}
}

// WithConfig replaces the Config read from environment variables.
func WithConfig(cfg Config) Option {
	return func(s *Shell) (OptFollowup, error) {
		if err := cfg.Valid(); err != nil {
			return nil, err
		}

		s.cfg = cfg
		return nil, nil
	}
}

// WithContext sets the context.Context that, when done, stops [*Shell.Guide].
func WithContext(ctx context.Context) Option {
	return func(s *Shell) (OptFollowup, error) {
		s.ctx = ctx
		return nil, nil
	}
}

// WithHTTPLogger sets the logger.Logger every request is logged with.
func WithHTTPLogger(l logger.Logger) Option {
	return func(s *Shell) (OptFollowup, error) {
		s.httpL = l
		return nil, nil
	}
}

// WithLogger sets the logger.Logger everything other than requests is logged with.
func WithLogger(l logger.Logger) Option {
	return func(s *Shell) (OptFollowup, error) {
		s.l = l
		l.Debug(fmt.Sprintf("using logger %T", l), nil)
		return nil, nil
	}
}

// WithMiddlewares constructs a followup option that, when called,
// appends mws to the middlewares called on every request.
func WithMiddlewares(mws ...middleware.Adapter) Option {
	return func(s *Shell) (OptFollowup, error) {
		return func() error {
			s.OnEveryRequest(mws...)
			if s.l != nil {
				s.l.Debug(fmt.Sprintf("using %d additional middlewares", len(mws)), nil)
			}

			return nil
		}, nil
	}
}

// WithServer replaces the *http.Server New would construct.
// Its Handler is always set to the *Shell.
func WithServer(srv *http.Server) Option {
	return func(s *Shell) (OptFollowup, error) {
		s.srv = srv
		return nil, nil
	}
}
