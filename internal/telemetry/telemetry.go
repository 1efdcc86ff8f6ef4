// Package telemetry is the structured-logging facade used by internal/optimize
// and cmd/shaderopt-dump. It wraps github.com/tliron/commonlog the same way
// the teacher's cmd/kanso-lsp bootstraps it for the LSP server: logging is
// silent until Configure is called, so linking this package costs nothing
// for callers that never opt in.
package telemetry

import "github.com/tliron/commonlog"

// Configure sets the global log verbosity (0 disables logging entirely) and
// optionally a log file path. It must be called at most once, before any
// Logger is used; this mirrors commonlog.Configure's own contract.
func Configure(verbosity int, logPath string) {
	if logPath == "" {
		commonlog.Configure(verbosity, nil)
		return
	}
	commonlog.Configure(verbosity, &logPath)
}

// Logger wraps a named commonlog.Logger with the handful of calls the
// optimizer needs: per-pass progress at Debug, and lowering/config
// anomalies at Warning.
type Logger struct {
	backend commonlog.Logger
}

// Get returns the named logger (e.g. "optimize", "optimize.lowerings").
// Names compose with dots the way commonlog's own subsystem names do.
func Get(name string) Logger {
	return Logger{backend: commonlog.GetLogger(name)}
}

func (l Logger) Debugf(format string, args ...interface{}) {
	l.backend.Debugf(format, args...)
}

func (l Logger) Infof(format string, args ...interface{}) {
	l.backend.Infof(format, args...)
}

func (l Logger) Warningf(format string, args ...interface{}) {
	l.backend.Warningf(format, args...)
}

func (l Logger) Errorf(format string, args ...interface{}) {
	l.backend.Errorf(format, args...)
}
