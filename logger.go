package zmtp

import "github.com/sirupsen/logrus"

// Logger is an injectable, printf-style logging hook. A nil Logger is
// always safe to call through (every call site in this package
// nil-checks before logging), matching zmodem.Logger's "noop by
// absence" convention.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// debugf, infof, warnf are nil-safe call-throughs every
// package function uses instead of repeating "if logger != nil" at
// each call site.
func debugf(l Logger, format string, args ...interface{}) {
	if l != nil {
		l.Debugf(format, args...)
	}
}

func infof(l Logger, format string, args ...interface{}) {
	if l != nil {
		l.Infof(format, args...)
	}
}

func warnf(l Logger, format string, args ...interface{}) {
	if l != nil {
		l.Warnf(format, args...)
	}
}

// LogrusLogger adapts a *logrus.Logger (or the package-level logger)
// to the Logger interface.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger wraps l, or the default standard logrus logger if l
// is nil, as a Logger.
func NewLogrusLogger(l *logrus.Logger) *LogrusLogger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &LogrusLogger{entry: logrus.NewEntry(l).WithField("component", "zmtp")}
}

func (l *LogrusLogger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *LogrusLogger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *LogrusLogger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *LogrusLogger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
