package gesture

import (
	"sync/atomic"

	"github.com/go-logr/logr"
)

// loggerPtr stores the active logger. Accessed atomically so that SetLogger
// can be called while another goroutine drives a Recognizer.
var loggerPtr atomic.Pointer[logr.Logger]

func init() {
	l := logr.Discard()
	loggerPtr.Store(&l)
}

// SetLogger configures the logger for gesture and its sub-packages.
// By default nothing is logged. A zero logr.Logger restores the default.
//
// Verbosity levels used:
//   - V(0): configuration problems
//   - V(1): episode lifecycle transitions
//   - V(2): every published update and inertia tick
//
// Example:
//
//	stdr.SetVerbosity(1)
//	gesture.SetLogger(stdr.New(log.New(os.Stderr, "[gesture] ", log.LstdFlags)))
func SetLogger(l logr.Logger) {
	if l.GetSink() == nil {
		l = logr.Discard()
	}
	loggerPtr.Store(&l)
}

// Logger returns the current logger.
func Logger() logr.Logger {
	return *loggerPtr.Load()
}
