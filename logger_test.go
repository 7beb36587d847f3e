package spheretrace

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	SetLogger(nil) // restore default
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	// The nop handler reports disabled at every level.
	if l.Enabled(nil, slog.LevelError) { //nolint:staticcheck // nil context is fine for handler check
		t.Error("default logger should be disabled")
	}
}

func TestSetLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	Logger().Info("device selected", "name", "test")
	if !strings.Contains(buf.String(), "device selected") {
		t.Errorf("log output missing message: %q", buf.String())
	}
}

func TestSetLoggerPropagatesToAccelerator(t *testing.T) {
	t.Cleanup(func() {
		SetLogger(nil)
		UnregisterAccelerator()
	})

	a := &fakeAccelerator{name: "fake"}
	if err := RegisterAccelerator(a); err != nil {
		t.Fatalf("register: %v", err)
	}

	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(l)
	if a.logger != l {
		t.Error("logger was not propagated to the accelerator")
	}
}
