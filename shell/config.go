package shell

import (
	"fmt"
	"strings"
	"time"

	"github.com/xy-planning-network/nightshift"
	"github.com/xy-planning-network/nightshift/logger"
)

const (
	assetsDirEnvVar     = "ASSETS_DIR"
	DefaultAssetsDir    = "client/dist"
	BaseURLEnvVar       = "BASE_URL"
	DefaultBaseURL      = "/public/"
	corsOriginEnvVar    = "CORS_ORIGIN"
	environmentEnvVar   = "ENVIRONMENT"
	logLevelEnvVar      = "LOG_LEVEL"
	preloadViewsEnvVar  = "PRELOAD_VIEWS"
	apiRateLimitEnvVar  = "API_RATE_LIMIT"
	defaultAPIRateLimit = 20
	apiRateBurstEnvVar  = "API_RATE_BURST"
	defaultAPIRateBurst = 40

	// Web server defaults
	listenAddrEnvVar          = "WEB_LISTEN_ADDR"
	DefaultListenAddr         = ":8080"
	enableTLSEnvVar           = "WEB_ENABLE_TLS"
	certFileEnvVar            = "WEB_CERT_FILE"
	keyFileEnvVar             = "WEB_KEY_FILE"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 15 * time.Second
)

// A Config holds everything needed to run the dashboard.
// Use NewConfig to read it from the environment.
type Config struct {
	// AssetsDir holds the client build; files missing from it are served from the fallback build.
	AssetsDir string

	// BaseURL is the path the single page app is served under, e.g., /public/.
	BaseURL string

	// CORSOrigin, if set, is the single origin allowed to make cross-origin requests.
	CORSOrigin string

	Env nightshift.Environment

	// Requests per second, and bursts above that, each client may make to /api.
	APIRateLimit int
	APIRateBurst int

	EnableTLS bool
	CertFile  string
	KeyFile   string

	ListenAddr   string
	IdleTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	LogLevel logger.LogLevel

	// PreloadViews fetches every lazy view module at startup.
	PreloadViews bool
}

// NewConfig reads a Config from environment variables, falling back to defaults.
func NewConfig() Config {
	return Config{
		AssetsDir:    nightshift.EnvVarOrString(assetsDirEnvVar, DefaultAssetsDir),
		BaseURL:      nightshift.EnvVarOrString(BaseURLEnvVar, DefaultBaseURL),
		CORSOrigin:   nightshift.EnvVarOrString(corsOriginEnvVar, ""),
		Env:          nightshift.EnvVarOrEnv(environmentEnvVar, nightshift.Development),
		APIRateLimit: nightshift.EnvVarOrInt(apiRateLimitEnvVar, defaultAPIRateLimit),
		APIRateBurst: nightshift.EnvVarOrInt(apiRateBurstEnvVar, defaultAPIRateBurst),
		EnableTLS:    nightshift.EnvVarOrBool(enableTLSEnvVar, false),
		CertFile:     nightshift.EnvVarOrString(certFileEnvVar, ""),
		KeyFile:      nightshift.EnvVarOrString(keyFileEnvVar, ""),
		ListenAddr:   nightshift.EnvVarOrString(listenAddrEnvVar, DefaultListenAddr),
		IdleTimeout:  nightshift.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  nightshift.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: nightshift.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
		LogLevel:     nightshift.EnvVarOrLogLevel(logLevelEnvVar, logger.LogLevelInfo),
		PreloadViews: nightshift.EnvVarOrBool(preloadViewsEnvVar, false),
	}
}

// Valid checks the Config can run a server.
func (c Config) Valid() error {
	if err := c.Env.Valid(); err != nil {
		return fmt.Errorf("%w: %s %q", err, environmentEnvVar, c.Env)
	}

	if !strings.HasPrefix(c.BaseURL, "/") {
		return fmt.Errorf("%w: %s must be a path starting with /, got %q", nightshift.ErrNotValid, BaseURLEnvVar, c.BaseURL)
	}

	if c.ListenAddr == "" {
		return fmt.Errorf("%w: %s", nightshift.ErrMissingData, listenAddrEnvVar)
	}

	if c.EnableTLS && (c.CertFile == "" || c.KeyFile == "") {
		return fmt.Errorf("%w: %s requires %s and %s", nightshift.ErrMissingData, enableTLSEnvVar, certFileEnvVar, keyFileEnvVar)
	}

	return nil
}
