package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/nightshift"
	"github.com/xy-planning-network/nightshift/http/resp"
	"github.com/xy-planning-network/nightshift/logger"
	"github.com/xy-planning-network/nightshift/metrics"
	"github.com/xy-planning-network/nightshift/nav"
)

type versionInfo struct {
	Version string `json:"version"`
	Build   string `json:"build"`
	Date    string `json:"date"`
}

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	info := versionInfo{Version: nightshift.Version, Build: nightshift.Build, Date: nightshift.Date}
	if err := h.Json(w, r, resp.Data(info)); err != nil {
		h.fail(w, r, err)
	}
}

// A route describes an entry in the route table.
type route struct {
	Path        string       `json:"path"`
	Name        string       `json:"name,omitempty"`
	LoadMode    nav.LoadMode `json:"loadMode,omitempty"`
	RedirectsTo string       `json:"redirectsTo,omitempty"`
	Href        string       `json:"href,omitempty"`
}

type routesParams struct {
	Mode nav.LoadMode `schema:"mode" validate:"enum"`
}

// routes lists the route table, optionally only those views loaded with ?mode=.
func (h *Handler) routes(w http.ResponseWriter, r *http.Request) {
	var params routesParams
	if err := h.parser.ParseRequest(r, &params); err != nil {
		h.fail(w, r, err)
		return
	}

	routes := make([]route, 0)
	for _, rt := range h.table.Routes() {
		if params.Mode != "" && rt.LoadMode != params.Mode {
			continue
		}

		desc := route{Path: rt.Path, Name: rt.Name, LoadMode: rt.LoadMode, RedirectsTo: rt.RedirectsTo()}
		if !rt.IsRedirect() {
			desc.Href, _ = h.table.Href(rt.Name, nil)
		}

		routes = append(routes, desc)
	}

	if err := h.Json(w, r, resp.Data(routes)); err != nil {
		h.fail(w, r, err)
	}
}

type resolveParams struct {
	URL  string `schema:"url" validate:"required_without=Path"`
	Path string `schema:"path" validate:"omitempty,startswith=/"`
}

// resolve matches ?url= (a full dashboard URL) or ?path= (a bare fragment path) to a view.
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	var params resolveParams
	if err := h.parser.ParseRequest(r, &params); err != nil {
		h.fail(w, r, err)
		return
	}

	metrics.Increase("resolve")

	var (
		res *nav.Resolved
		err error
	)
	if params.URL != "" {
		res, err = h.table.ResolveURL(r.Context(), params.URL)
	} else {
		res, err = h.table.Resolve(r.Context(), params.Path)
	}

	switch {
	case errors.Is(err, nav.ErrNotFound):
		metrics.Increase("resolve_not_found")
	case errors.Is(err, nav.ErrLazyModuleLoad):
		metrics.Increase("resolve_load_error")
	}

	if err != nil {
		route := params.Path
		if params.URL != "" {
			route = nav.Fragment(params.URL)
		}

		h.failAt(w, r, logger.LogContext{Route: route}, err)
		return
	}

	if err := h.Json(w, r, resp.Data(res)); err != nil {
		h.fail(w, r, err)
	}
}

type navigation struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Href string `json:"href"`
}

// navigate looks up the path of the route named in the URL.
// The request's query is carried into the path.
func (h *Handler) navigate(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	query := r.URL.Query()

	metrics.Increase("navigate")
	p, err := h.table.Navigate(name, query)
	if err != nil {
		metrics.Increase("navigate_unknown")
		h.fail(w, r, err)
		return
	}

	href, err := h.table.Href(name, query)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.Json(w, r, resp.Data(navigation{Name: name, Path: p, Href: href})); err != nil {
		h.fail(w, r, err)
	}
}

// view responds with the module of the view named in the URL,
// fetching it first if it is lazy and not yet loaded.
func (h *Handler) view(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	p, err := h.table.Navigate(name, nil)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.table.Resolve(r.Context(), p)
	if err != nil {
		h.failAt(w, r, logger.LogContext{Route: p, View: name}, err)
		return
	}

	etag := fmt.Sprintf("%q", res.Module.Hash)
	if res.Module.Hash != "" && r.Header.Get("If-None-Match") == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	opts := []resp.Fn{
		resp.Data(res.Module.Content),
		resp.Header("Content-Type", res.Module.ContentType),
		resp.Header("Cache-Control", "no-cache"),
	}
	if res.Module.Hash != "" {
		opts = append(opts, resp.Header("ETag", etag))
	}

	if err := h.Raw(w, r, opts...); err != nil {
		h.fail(w, r, err)
	}
}
