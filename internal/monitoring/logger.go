// Package monitoring carries the injectable diagnostic hooks for the
// analyzers. Nothing in the scoring path depends on these being enabled.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but
// may be replaced by SetLogger. Tests or embedding applications can redirect
// or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// tracef is the per-frame trace sink, nil unless a caller opts in. Per-frame
// analyzer internals are far too chatty for Logf, so they go through this
// separate hook.
var tracef func(format string, v ...interface{})

// SetTrace installs a per-frame trace sink. Passing nil disables tracing.
func SetTrace(f func(format string, v ...interface{})) {
	tracef = f
}

// Tracef forwards to the installed trace sink, if any.
func Tracef(format string, v ...interface{}) {
	if tracef != nil {
		tracef(format, v...)
	}
}
