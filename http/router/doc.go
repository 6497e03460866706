/*
Package router defines how the dashboard's HTTP server routes requests.

[*Router] utilizes [mux.Router] for its implementation,
and so functions as thin wrapper around that package.

A [Router] leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
An implementation of [http.Handler] is the function called when a request matches a Route.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

These routes serve the server side only.
Navigating between the dashboard's views happens after the "#" in the URL,
which never reaches the server; see package nav for that.
*/
package router
