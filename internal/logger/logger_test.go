package logger

import (
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"production defaults", Config{}},
		{"json info", Config{Level: "info", Format: "json"}},
		{"console debug", Config{Level: "debug", Format: "console", Development: true}},
		{"warn level", Config{Level: "warn", Format: "json"}},
		{"error level", Config{Level: "error", Format: "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New() error = %v, want nil", err)
			}
			if log == nil {
				t.Fatal("New() returned nil logger")
			}

			log.Info("test message", String("key", "value"))

			// Sync errors are acceptable in test environments
			_ = log.Sync()
		})
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	if _, err := New(Config{Level: "verbose"}); err == nil {
		t.Fatal("New() with unknown level returned nil error")
	}
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	if log == nil {
		t.Fatal("NewNop() returned nil")
	}

	// Nop logger should not panic on any operation
	log.Debug("debug")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")
	_ = log.Sync()
}

func TestLoggerWith(t *testing.T) {
	log, err := New(Config{Level: "debug", Development: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = log.Sync() }()

	contextLogger := log.With(
		String("service", "job-importer"),
		String("version", "1.0.0"),
	)
	if contextLogger == nil {
		t.Fatal("With() returned nil")
	}
	contextLogger.Info("message with context")

	chained := contextLogger.With(String("request_id", "12345"))
	if chained == nil {
		t.Fatal("chained With() returned nil")
	}
	chained.Info("message with chained context")
}

func TestLoggerFieldHelpers(t *testing.T) {
	log, err := New(Config{Level: "debug", Development: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = log.Sync() }()

	// Every helper should produce a usable field
	log.Debug("field helpers",
		String("string_field", "value"),
		Int("int_field", 42),
		Int64("int64_field", 9223372036854775807),
		Float64("float_field", 3.14),
		Bool("bool_field", true),
		Duration("duration_field", time.Second),
		Time("time_field", time.Now()),
		Error(errors.New("test error")),
		Any("any_field", map[string]any{"key": "value"}),
		Strings("strings_field", []string{"a", "b", "c"}),
	)
}
