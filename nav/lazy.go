package nav

import (
	"context"
	"errors"
	"fmt"

	"github.com/xy-planning-network/nightshift/logger"
	"golang.org/x/sync/errgroup"
)

var errNoModule = errors.New("loader returned no module")

// load returns the cached module for the lazy route r or fetches it with its Loader.
//
// Concurrent callers for the same name share one in-flight fetch.
// A successful fetch is cached for the life of the Table; a failed one is not,
// so the next navigation retries.
func (t *Table) load(ctx context.Context, r Route) (*Module, error) {
	name, fn := r.Name, r.Target.(View).Loader
	lc := func(err error) *logger.LogContext {
		return &logger.LogContext{Route: r.Path, View: name, LoadMode: r.LoadMode.String(), Error: err}
	}

	if m, ok := t.cached(name); ok {
		return m, nil
	}

	ch := t.flights.DoChan(name, func() (any, error) {
		// NOTE: a flight may have finished between the check above and joining here
		if m, ok := t.cached(name); ok {
			return m, nil
		}

		m, err := fn(context.WithoutCancel(ctx))
		if err == nil && m == nil {
			err = errNoModule
		}

		if err != nil {
			if t.l != nil {
				t.l.Warn(fmt.Sprintf("loading view module %s", name), lc(err))
			}

			return nil, err
		}

		t.mu.Lock()
		t.loaded[name] = m
		t.mu.Unlock()

		if t.l != nil {
			t.l.Debug(fmt.Sprintf("loaded view module %s", name), lc(nil))
		}

		return m, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()

	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrLazyModuleLoad, name, res.Err)
		}

		return res.Val.(*Module), nil
	}
}

func (t *Table) cached(name string) (*Module, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	m, ok := t.loaded[name]
	return m, ok
}

// Loaded asserts whether the view module for the lazy route named name is cached.
// Eager routes always report false.
func (t *Table) Loaded(name string) bool {
	_, ok := t.cached(name)
	return ok
}

// Preload fetches every lazy view module concurrently,
// returning the first error encountered.
func (t *Table) Preload(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, r := range t.routes {
		if r.LoadMode != Lazy {
			continue
		}

		r := r
		g.Go(func() error {
			_, err := t.load(gctx, r)
			return err
		})
	}

	return g.Wait()
}
