package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log, err := New(Config{Level: "debug"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if log == nil {
		t.Fatal("expected logger, got nil")
	}

	log.Debug("debug message", String("key", "value"))
	log.Info("info message", Int("count", 1))
	log.Warn("warn message")
	log.Error("error message")
}

func TestNew_DefaultsApplied(t *testing.T) {
	cfg := Config{}
	cfg.SetDefaults()

	if cfg.Level != DefaultLevel {
		t.Errorf("expected level %s, got %s", DefaultLevel, cfg.Level)
	}
	if cfg.Format != DefaultFormat {
		t.Errorf("expected format %s, got %s", DefaultFormat, cfg.Format)
	}
	if len(cfg.OutputPaths) == 0 {
		t.Error("expected default output paths")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"INFO", zapcore.InfoLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestWith(t *testing.T) {
	log, err := New(Config{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	child := log.With(String("component", "trainer"))
	if child == nil {
		t.Fatal("expected child logger, got nil")
	}
	child.Info("message with context")
}

func TestNoOpLogger(t *testing.T) {
	log := NewNop()
	log.Debug("a")
	log.Info("b")
	log.Warn("c")
	log.Error("d")
	log.Fatal("e") // must not exit
	if got := log.With(String("k", "v")); got != log {
		t.Error("With must return the same no-op logger")
	}
	if err := log.Sync(); err != nil {
		t.Errorf("Sync: %v", err)
	}
}
