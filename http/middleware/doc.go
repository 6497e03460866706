/*
The middleware package defines what a middleware is in the dashboard and a set of basic middlewares.

The available middlewares are:
  - CORS
  - InjectIPAddress
  - LogRequest
  - RateLimit
  - ReportPanic
  - RequestID

The dashboard applies them in this order:

	adpts := []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log, "/healthz"),
		middleware.CORS(origin),
	}

RateLimit guards only the API:

	middleware.RateLimit(middleware.NewVisitors(5, 20))
*/
package middleware
