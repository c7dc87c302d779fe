package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSessionHandlerStampsRecordsAfterSetSession(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewSessionHandler(slog.NewTextHandler(&buf, nil))
	logger := slog.New(handler)

	logger.Info("before session")
	if strings.Contains(buf.String(), SessionKey+"=") {
		t.Errorf("record before SetSession should not carry a session attr: %q", buf.String())
	}

	buf.Reset()
	handler.SetSession("2026-01-02T03-04-05")
	logger.Info("after session")
	if !strings.Contains(buf.String(), SessionKey+"=2026-01-02T03-04-05") {
		t.Errorf("record after SetSession should carry the session attr: %q", buf.String())
	}
}

func TestSessionHandlerDerivedHandlersShareSession(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewSessionHandler(slog.NewTextHandler(&buf, nil))
	derived := slog.New(handler.WithAttrs([]slog.Attr{slog.String("component", "crawler")}))

	handler.SetSession("2026-01-02T03-04-05")
	derived.Info("derived record")

	out := buf.String()
	if !strings.Contains(out, "component=crawler") {
		t.Errorf("derived handler should keep its attributes: %q", out)
	}
	if !strings.Contains(out, SessionKey+"=2026-01-02T03-04-05") {
		t.Errorf("derived handler should see the parent's session id: %q", out)
	}
}

func TestSessionHandlerEnabledDelegates(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewSessionHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	if handler.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled when the underlying level is warn")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled when the underlying level is warn")
	}
}
