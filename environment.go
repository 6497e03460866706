package nightshift

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xy-planning-network/nightshift/logger"
)

// An Environment is a deployment the dashboard runs in.
type Environment string

const (
	Demo        Environment = "DEMO"
	Development Environment = "DEVELOPMENT"
	Production  Environment = "PRODUCTION"
	Review      Environment = "REVIEW"
	Staging     Environment = "STAGING"
	Testing     Environment = "TESTING"
)

var _ Enumerable = Environment("")

func (e Environment) String() string { return string(e) }

func (e Environment) Valid() error {
	switch e {
	case Demo, Development, Production, Review, Staging, Testing:
		return nil
	default:
		return ErrNotValid
	}
}

// Local reports whether the dashboard runs on a developer's machine or under go test,
// where panics and errors are not reported to Sentry.
func (e Environment) Local() bool {
	return e == Development || e == Testing
}

// envVarOr looks up key and parses it with parse,
// returning def when key is unset or parse fails.
func envVarOr[T any](key string, def T, parse func(string) (T, error)) T {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return def
	}

	v, err := parse(val)
	if err != nil {
		return def
	}

	return v
}

// EnvVarOrBool reads key as "true" or "false", in any case, or returns def.
func EnvVarOrBool(key string, def bool) bool {
	return envVarOr(key, def, func(val string) (bool, error) {
		switch strings.ToLower(val) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return false, ErrNotValid
		}
	})
}

// EnvVarOrDuration reads key as a [time.Duration], e.g., 90s, or returns def.
func EnvVarOrDuration(key string, def time.Duration) time.Duration {
	return envVarOr(key, def, time.ParseDuration)
}

// EnvVarOrEnv reads key as an [Environment], in any case, or returns def
// if key does not name one.
func EnvVarOrEnv(key string, def Environment) Environment {
	return envVarOr(key, def, func(val string) (Environment, error) {
		env := Environment(strings.ToUpper(val))
		return env, env.Valid()
	})
}

// EnvVarOrInt reads key as an int or returns def.
func EnvVarOrInt(key string, def int) int {
	return envVarOr(key, def, strconv.Atoi)
}

// EnvVarOrLogLevel reads key as a [logger.LogLevel], in any case, or returns def.
func EnvVarOrLogLevel(key string, def logger.LogLevel) logger.LogLevel {
	return envVarOr(key, def, func(val string) (logger.LogLevel, error) {
		ll := logger.NewLogLevel(strings.ToUpper(val))
		if ll == logger.LogLevelUnk {
			return ll, fmt.Errorf("%w: log level %q", ErrNotValid, val)
		}

		return ll, nil
	})
}

// EnvVarOrString reads key or returns def if it is unset or empty.
func EnvVarOrString(key, def string) string {
	return envVarOr(key, def, func(val string) (string, error) { return val, nil })
}
