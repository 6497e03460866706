/*
Package shell initializes and runs the nightshift dashboard's web server with sane defaults.

# Shell

The main entrypoint to package shell is the [Shell] type, constructed with [New].
[New] reads the route table's eager view from the client build
and fails if the table is misconfigured; nothing is served in that case.

[*Shell.Guide] begins the web server.
By default, it listens on [DefaultListenAddr] (:8080),
serving the single page app under [DefaultBaseURL] (/public/).
Stop the web server with [*Shell.Shutdown],
by cancelling the context passed to [WithContext],
or by sending a signal [*Shell.Guide] listens for.

# Configuration

A developer configures the dashboard through environment variables or [WithConfig].
Environment variables ought to be set in a file called ".env"
found at the same directory the dashboard is executed from.

Here are the available environment variables.
  - API_RATE_BURST: requests a client may burst to /api above API_RATE_LIMIT; default: 40
  - API_RATE_LIMIT: requests per second a client may make to /api, 0 disables limiting; default: 20
  - ASSETS_DIR: the directory holding the client build; default: client/dist
  - BASE_URL: the path the single page app is served under; default: /public/
  - CORS_ORIGIN: the single origin allowed to make cross-origin requests; default: none
  - ENVIRONMENT: the environment the dashboard is running in; cf. [nightshift.Environment]
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - PRELOAD_VIEWS: fetch every lazily loaded view at startup; default: false
  - SENTRY_DSN: report errors to Sentry
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout for writing HTTP responses; default: 15s
  - WEB_CERT_FILE: the TLS certificate, required by WEB_ENABLE_TLS
  - WEB_ENABLE_TLS: serve HTTPS; default: false
  - WEB_KEY_FILE: the TLS key, required by WEB_ENABLE_TLS
  - WEB_LISTEN_ADDR: the address to listen on; default: :8080
*/
package shell
