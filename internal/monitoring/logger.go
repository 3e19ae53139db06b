// Package monitoring holds the diagnostic loggers shared by the tracker, the
// phase machine and the telemetry feed.
package monitoring

import "log"

// Logf reports events worth seeing on every run: calibration results,
// phase changes, scores, capture failures.
var Logf func(format string, v ...interface{}) = log.Printf

// Debugf reports per-frame detail. It is muted until SetDebugLogger is
// called, usually from the -debug flag.
var Debugf func(format string, v ...interface{}) = func(string, ...interface{}) {}

// SetLogger replaces Logf. Passing nil mutes it.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetDebugLogger replaces Debugf. Passing nil mutes it.
func SetDebugLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Debugf = func(string, ...interface{}) {}
		return
	}
	Debugf = f
}
