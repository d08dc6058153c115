package gst

import (
	"log"
	"os"
)

// Logger is the leveled logging surface the persistent backend uses for
// resize, flush, and recovery diagnostics. Callers can plug in their own
// implementation through PersistOpts; BuildPersistent falls back to
// defaultLogger, a thin wrapper over the standard library logger.
// LoadPersistent takes no logger and logs nothing.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// defaultLogger writes through the standard library's log package,
// prefixed so its output is easy to filter out of the rest of an
// application's logs.
type defaultLogger struct {
	*log.Logger
}

func newDefaultLogger() *defaultLogger {
	return &defaultLogger{Logger: log.New(os.Stderr, "gst: ", log.LstdFlags)}
}

func (l *defaultLogger) Debugf(format string, args ...any) { l.Printf("debug: "+format, args...) }
func (l *defaultLogger) Warnf(format string, args ...any)  { l.Printf("warn: "+format, args...) }

// noopLogger discards everything; used when a caller explicitly wants
// silence.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Warnf(string, ...any)  {}
