// Package aceclog is the logging facade shared by the transcoder facade and
// cmd/acecodec.
//
// The core codecs (ari, aritype, admcat, aritext, aricbor) never import this
// package: per the concurrency model, they are pure, nonblocking
// transformations and every error they hit is returned, not logged.
package aceclog

import (
	"log"
	"os"
	"sync/atomic"
)

// LogProvider is the backend a Clog dispatches to. Only Debug, Warn, Error
// and Critical are defined; ACE has no use for the full RFC5424 level set.
type LogProvider interface {
	Critical(format string, v ...interface{})
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Clog is a toggleable logger: calls are dropped unless LogMode(true) was
// called on this value.
type Clog struct {
	provider LogProvider
	has      uint32
}

// NewLogger creates a Clog backed by the stdlib log package.
func NewLogger(prefix string) Clog {
	return Clog{
		provider: defaultLogger{log.New(os.Stdout, prefix, log.LstdFlags)},
	}
}

// LogMode enables or disables output.
func (sf *Clog) LogMode(enable bool) {
	if enable {
		atomic.StoreUint32(&sf.has, 1)
	} else {
		atomic.StoreUint32(&sf.has, 0)
	}
}

// SetLogProvider swaps the backend, e.g. to NewZapLogger.
func (sf *Clog) SetLogProvider(p LogProvider) {
	if p != nil {
		sf.provider = p
	}
}

func (sf Clog) Critical(format string, v ...interface{}) {
	if atomic.LoadUint32(&sf.has) == 1 {
		sf.provider.Critical(format, v...)
	}
}

func (sf Clog) Error(format string, v ...interface{}) {
	if atomic.LoadUint32(&sf.has) == 1 {
		sf.provider.Error(format, v...)
	}
}

func (sf Clog) Warn(format string, v ...interface{}) {
	if atomic.LoadUint32(&sf.has) == 1 {
		sf.provider.Warn(format, v...)
	}
}

func (sf Clog) Debug(format string, v ...interface{}) {
	if atomic.LoadUint32(&sf.has) == 1 {
		sf.provider.Debug(format, v...)
	}
}

type defaultLogger struct {
	*log.Logger
}

var _ LogProvider = (*defaultLogger)(nil)

func (sf defaultLogger) Critical(format string, v ...interface{}) { sf.Printf("[C]: "+format, v...) }
func (sf defaultLogger) Error(format string, v ...interface{})    { sf.Printf("[E]: "+format, v...) }
func (sf defaultLogger) Warn(format string, v ...interface{})     { sf.Printf("[W]: "+format, v...) }
func (sf defaultLogger) Debug(format string, v ...interface{})    { sf.Printf("[D]: "+format, v...) }
