/*
Package resp provides a high-level API for responding to HTTP requests.

The core of the package revolves around the [Responder] and the [Fn] functional options.
A Responder is constructed once, e.g., with a logger and root URL,
and each handler then calls one of its methods, shaping the response with Fns:

	d.Json(w, r, resp.Data(resolved))
	d.Err(w, r, err, resp.Code(http.StatusNotFound))
	d.Redirect(w, r, resp.Url("/public/"), resp.Code(http.StatusTemporaryRedirect))
*/
package resp
