package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, level := range []string{"debug", "info", "WARN", "error"} {
		t.Run(level, func(t *testing.T) {
			l, err := New(level)
			if err != nil {
				t.Fatalf("New(%q) unexpected error = %v", level, err)
			}
			if l == nil {
				t.Fatalf("New(%q) returned nil logger", level)
			}
		})
	}

	if _, err := New("loud"); err == nil {
		t.Error("New(\"loud\") expected error but got none")
	}
}

func TestLeveledLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := LeveledLogger{L: zap.New(core).Sugar()}

	l.Debug("retrying", "attempt", 1)
	l.Info("request", "url", "http://example")
	l.Warn("slow")
	l.Error("giving up", "err", "boom")

	entries := logs.AllUntimed()
	if len(entries) != 4 {
		t.Fatalf("got %d log entries, want 4", len(entries))
	}
	wantLevels := []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, e := range entries {
		if e.Level != wantLevels[i] {
			t.Errorf("entry %d level = %v, want %v", i, e.Level, wantLevels[i])
		}
	}
	if got := entries[0].ContextMap()["attempt"]; got != int64(1) {
		t.Errorf("attempt field = %v, want 1", got)
	}
}
