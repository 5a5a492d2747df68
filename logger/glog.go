package logger

import "github.com/golang/glog"

// debugVerbosity is the glog -v level at which Debugf output is written.
const debugVerbosity = 2

// GlogLogger implements the Logger interface on top of glog with a configurable call depth,
// so file:line in the output points at the caller rather than at this package.
type GlogLogger struct {
	depth int
}

// NewGlogLogger returns a Logger that reports its caller's location.
func NewGlogLogger() Logger {
	return &GlogLogger{depth: 1}
}

// Debugf logs at Info severity when glog verbosity is at least debugVerbosity.
func (logger *GlogLogger) Debugf(msg string, args ...any) {
	if glog.V(debugVerbosity) {
		glog.InfoDepthf(logger.depth, msg, args...)
	}
}

func (logger *GlogLogger) Infof(msg string, args ...any) {
	glog.InfoDepthf(logger.depth, msg, args...)
}

func (logger *GlogLogger) Warnf(msg string, args ...any) {
	glog.WarningDepthf(logger.depth, msg, args...)
}

func (logger *GlogLogger) Errorf(msg string, args ...any) {
	glog.ErrorDepthf(logger.depth, msg, args...)
}
