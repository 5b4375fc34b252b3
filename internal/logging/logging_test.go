package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestPreInitLoggerUsesConfiguredHandler(t *testing.T) {
	logger := L("dxgi")

	var buf bytes.Buffer
	Init("text", "info", &buf)

	logger.Info("adapter listed", KeyAdapter, 1)

	out := buf.String()
	if !strings.Contains(out, `msg="adapter listed"`) {
		t.Fatalf("expected message, got: %s", out)
	}
	if !strings.Contains(out, "component=dxgi") {
		t.Fatalf("expected component field, got: %s", out)
	}
	if !strings.Contains(out, "adapter=1") {
		t.Fatalf("expected adapter field, got: %s", out)
	}
}

func TestPreInitLoggerRespectsConfiguredLevel(t *testing.T) {
	logger := L("dxgi")

	var buf bytes.Buffer
	Init("text", "warn", &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info log should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("warn log should be emitted: %s", out)
	}
}

func TestInitJSONAndDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	Init("json", "debug", &buf)

	slog.Default().WithGroup("scan").Debug("output skipped", KeyOutput, 2)

	out := buf.String()
	if !strings.Contains(out, `"msg":"output skipped"`) {
		t.Fatalf("expected JSON message, got: %s", out)
	}
	if !strings.Contains(out, `"scan":{"output":2}`) {
		t.Fatalf("expected grouped field, got: %s", out)
	}
}

func TestInitSwitchesBetweenFormats(t *testing.T) {
	logger := L("cli")

	var text, js, again bytes.Buffer
	Init("text", "info", &text)
	logger.Info("first")
	Init("json", "info", &js)
	logger.Info("second")
	Init("text", "info", &again)
	logger.Info("third")

	if !strings.Contains(text.String(), "msg=first") {
		t.Fatalf("text handler output: %s", text.String())
	}
	if !strings.Contains(js.String(), `"msg":"second"`) || !strings.Contains(js.String(), `"component":"cli"`) {
		t.Fatalf("json handler output: %s", js.String())
	}
	if !strings.Contains(again.String(), "msg=third") {
		t.Fatalf("text handler after json: %s", again.String())
	}
}

func TestContextLogger(t *testing.T) {
	if FromContext(context.Background()) != defaultLogger {
		t.Fatal("empty context should yield the default logger")
	}
	l := L("cli")
	if FromContext(NewContext(context.Background(), l)) != l {
		t.Fatal("expected the logger stored in the context")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
