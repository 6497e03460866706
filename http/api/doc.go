/*
Package api exposes the dashboard's navigation router over HTTP.

Every endpoint responds with JSON shaped like

	{"data": ...}

or, on failure,

	{"error": "..."}

except for /api/views/{name}, which responds with the view module itself.
*/
package api
