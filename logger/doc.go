/*
Package logger provides logging functionality to the dashboard by defining the required behavior in [Logger]
and providing an implementation of it with [ColorLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [ColorLogger] initialized with [LogLevelWarn]
only produces messages from [*ColorLogger.Warn], [*ColorLogger.Error], and [*ColorLogger.Fatal].

Log messages emitted by [ColorLogger] are composed of a few parts:
	- timestamp
	- log level
	- call site
	- message
	- log context

Here's an example:
	2026/04/28 15:55:21 [WARN] nav/lazy.go:42 'loading view module about' log_context: {"error":"no chunk for about","nav":{"load_mode":"lazy","route":"/about","view":"about"}}

# SentryLogger

When SENTRY_DSN is set, [New] wraps the [ColorLogger] in a [SentryLogger],
which additionally ships the LogContext.Error of Warn, Error and Fatal logs to Sentry,
tagged with the route, view and load mode the LogContext names.
*/
package logger
