package aceclog

import (
	"testing"

	"go.uber.org/zap"
)

type recordingProvider struct {
	lines []string
}

func (r *recordingProvider) Critical(format string, v ...interface{}) { r.lines = append(r.lines, format) }
func (r *recordingProvider) Error(format string, v ...interface{})    { r.lines = append(r.lines, format) }
func (r *recordingProvider) Warn(format string, v ...interface{})     { r.lines = append(r.lines, format) }
func (r *recordingProvider) Debug(format string, v ...interface{})    { r.lines = append(r.lines, format) }

func TestClogDropsWhenDisabled(t *testing.T) {
	rec := &recordingProvider{}
	c := Clog{}
	c.SetLogProvider(rec)
	c.Warn("should not appear")
	if len(rec.lines) != 0 {
		t.Fatalf("expected no lines logged while disabled, got %v", rec.lines)
	}
}

func TestClogLogsWhenEnabled(t *testing.T) {
	rec := &recordingProvider{}
	c := Clog{}
	c.SetLogProvider(rec)
	c.LogMode(true)
	c.Warn("hello %d", 1)
	c.Debug("world")
	if len(rec.lines) != 2 {
		t.Fatalf("expected 2 lines logged, got %v", rec.lines)
	}
}

func TestZapBackendSelection(t *testing.T) {
	SetLogger(zap.NewNop())
	if Logger() == nil {
		t.Fatal("Logger() must return the logger installed by SetLogger")
	}
	c := Clog{}
	c.SetLogProvider(NewZapLogger(nil))
	c.LogMode(true)
	c.Debug("ping %d", 1)
	c.Warn("pong")
}

func TestClogLogModeToggle(t *testing.T) {
	rec := &recordingProvider{}
	c := Clog{}
	c.SetLogProvider(rec)
	c.LogMode(true)
	c.Error("one")
	c.LogMode(false)
	c.Error("two")
	if len(rec.lines) != 1 {
		t.Fatalf("expected 1 line logged after disabling, got %v", rec.lines)
	}
}
