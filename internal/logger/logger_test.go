package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogsAreDroppedBeforeInit(t *testing.T) {
	Reset()
	defer Reset()

	// must not panic
	Info("nobody listens", "k", "v")
}

func TestInitWritesToFile(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "tp.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Info("session created", "session", "demo")
	Close()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(b)
	if !strings.Contains(out, "session created") || !strings.Contains(out, "session=demo") {
		t.Fatalf("unexpected log contents: %s", out)
	}
}

func TestDebugLevelToggle(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug output must be filtered at info level: %s", buf.String())
	}

	SetDebug(true)
	Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected debug output once enabled, got: %s", buf.String())
	}
}

func TestInitBadPath(t *testing.T) {
	Reset()
	defer Reset()

	if err := Init(filepath.Join(t.TempDir(), "missing", "tp.log")); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
