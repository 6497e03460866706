package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/xy-planning-network/nightshift"
	"github.com/xy-planning-network/nightshift/http/req"
	"github.com/xy-planning-network/nightshift/http/resp"
	"github.com/xy-planning-network/nightshift/http/router"
	"github.com/xy-planning-network/nightshift/logger"
	"github.com/xy-planning-network/nightshift/nav"
)

// A Handler answers API requests against a route table.
type Handler struct {
	*resp.Responder
	l      logger.Logger
	parser *req.Parser
	table  *nav.Table
}

// New constructs a Handler for tbl.
func New(tbl *nav.Table, d *resp.Responder, l logger.Logger) *Handler {
	if l == nil {
		l = logger.New()
	}

	return &Handler{Responder: d, l: l, parser: req.NewParser(), table: tbl}
}

// Routes lists the API's endpoints, relative to where they are mounted, e.g., /api.
func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Path: "/version", Method: http.MethodGet, Handler: h.version},
		{Path: "/routes", Method: http.MethodGet, Handler: h.routes},
		{Path: "/resolve", Method: http.MethodGet, Handler: h.resolve},
		{Path: "/navigate/{name}", Method: http.MethodGet, Handler: h.navigate},
		{Path: "/views/{name}", Method: http.MethodGet, Handler: h.view},
	}
}

// Healthz reports the server is up.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// fail responds with err, choosing the status code by what err wraps.
// Server side failures are logged.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.failAt(w, r, logger.LogContext{}, err)
}

// failAt is fail for a request navigating somewhere,
// logging where with the route and view set in lc.
func (h *Handler) failAt(w http.ResponseWriter, r *http.Request, lc logger.LogContext, err error) {
	code := statusCode(err)
	if code >= http.StatusInternalServerError {
		lc.Data = map[string]any{nightshift.LogKindKey: nightshift.NavLogKind}
		lc.Error = err
		lc.Request = r
		h.l.Error(err.Error(), &lc)
	}

	if err := h.Json(w, r, resp.Data(err), resp.Code(code)); err != nil && !errors.Is(err, resp.ErrDone) {
		h.Err(w, r, err)
	}
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, nav.ErrNotFound), errors.Is(err, nav.ErrUnknownRouteName):
		return http.StatusNotFound
	case errors.Is(err, nightshift.ErrNotValid):
		return http.StatusBadRequest
	case errors.Is(err, nav.ErrLazyModuleLoad):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
