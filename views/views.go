// Package views declares the nightshift dashboard's route table.
package views

import (
	"fmt"

	"github.com/xy-planning-network/nightshift/assets"
	"github.com/xy-planning-network/nightshift/logger"
	"github.com/xy-planning-network/nightshift/nav"
)

// Names of the dashboard's views, for use with (*nav.Table).Navigate.
const (
	About    = "about"
	Objects  = "objects"
	Scanners = "scanners"
	Triggers = "triggers"
)

// Routes declares the dashboard's route table.
// The root redirects to the Scanners view, the only one shipped eagerly.
func Routes(scanners *nav.Module, lazy func(name string) nav.Loader) []nav.Route {
	return []nav.Route{
		nav.RedirectRoute("/", "/"+Scanners),
		nav.EagerRoute("/"+Scanners, Scanners, scanners),
		nav.LazyRoute("/"+Objects, Objects, lazy(Objects)),
		nav.LazyRoute("/"+Triggers, Triggers, lazy(Triggers)),
		nav.LazyRoute("/"+About, About, lazy(About)),
	}
}

// New reads the eager Scanners view from lib and builds the dashboard's route table,
// linking under base.
func New(base string, lib *assets.Library, l logger.Logger) (*nav.Table, error) {
	scanners, err := lib.Chunk(Scanners)
	if err != nil {
		return nil, fmt.Errorf("could not load eager view %s: %w", Scanners, err)
	}

	opts := []nav.TableOptFn{nav.WithBase(base)}
	if l != nil {
		opts = append(opts, nav.WithLogger(l))
	}

	return nav.New(Routes(scanners, lib.Loader), opts...)
}
