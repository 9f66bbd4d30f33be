package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: ComponentLedger, Output: &buf})

	l.Info("Transaction added", FieldCount, 3)
	out := buf.String()
	if !strings.Contains(out, "component=ledger") || !strings.Contains(out, "count=3") {
		t.Fatalf("unexpected output: %q", out)
	}

	buf.Reset()
	l.WithComponent(ComponentExport).Warn("Chart skipped")
	if !strings.Contains(buf.String(), "component=export") {
		t.Fatalf("expected export component, got %q", buf.String())
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Component: ComponentApp, Output: &buf})
	l.Info("hidden")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	l.Error("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected error record, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestFromContext(t *testing.T) {
	l := Discard().WithComponent(ComponentCLI)
	if got := FromContext(NewContext(context.Background(), l)); got != l {
		t.Fatalf("expected the stored logger")
	}
	if got := FromContext(context.Background()); got.Component() != "unknown" {
		t.Fatalf("expected fallback logger, got %q", got.Component())
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().WithOperation(OpAdd).WithTransaction("2024-01-05", "Food", -50).WithError(nil)
	if len(f.ToSlice()) != 8 {
		t.Fatalf("unexpected fields: %v", f)
	}
	if _, ok := f[FieldError]; ok {
		t.Fatalf("nil error must not be recorded")
	}
}

func TestLoggerWithKeepsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: ComponentBackend, Output: &buf}).With("queue", "transactions")

	l.Info("Initialized AMQP client")
	out := buf.String()
	if !strings.Contains(out, "component=backend") || !strings.Contains(out, "queue=transactions") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestLogFieldsErrorType(t *testing.T) {
	f := NewFields().WithOperation(OpSave).WithErrorType(ErrorTypeIO)
	if f[FieldErrorType] != ErrorTypeIO || f[FieldOperation] != OpSave {
		t.Fatalf("unexpected fields: %v", f)
	}
}
