package aceclog

import (
	"sync"

	"go.uber.org/zap"
)

var (
	zapLogger *zap.Logger
	zapOnce   sync.Once
)

// Logger returns the package's shared zap logger, a no-op logger until
// SetLogger is called.
func Logger() *zap.Logger {
	zapOnce.Do(func() {
		if zapLogger == nil {
			zapLogger = zap.NewNop()
		}
	})
	return zapLogger
}

// SetLogger configures the package's shared zap logger. Call before
// constructing any NewZapLogger-backed Clog.
func SetLogger(l *zap.Logger) {
	zapLogger = l
}

// zapProvider adapts a *zap.Logger to LogProvider.
type zapProvider struct {
	l *zap.Logger
}

// NewZapLogger wraps l as a LogProvider, usable via Clog.SetLogProvider.
func NewZapLogger(l *zap.Logger) LogProvider {
	if l == nil {
		l = Logger()
	}
	return zapProvider{l: l.WithOptions(zap.AddCallerSkip(1))}
}

func (p zapProvider) Critical(format string, v ...interface{}) {
	p.l.Sugar().Errorf("[C]: "+format, v...)
}

func (p zapProvider) Error(format string, v ...interface{}) {
	p.l.Sugar().Errorf(format, v...)
}

func (p zapProvider) Warn(format string, v ...interface{}) {
	p.l.Sugar().Warnf(format, v...)
}

func (p zapProvider) Debug(format string, v ...interface{}) {
	p.l.Sugar().Debugf(format, v...)
}
