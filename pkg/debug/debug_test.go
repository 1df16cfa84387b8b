package debug

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func withBuffer(t *testing.T, on bool) *bytes.Buffer {
	t.Helper()
	prev := Enabled()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetEnabled(on)
	t.Cleanup(func() { SetEnabled(prev) })
	return &buf
}

func TestDisabledIsSilent(t *testing.T) {
	buf := withBuffer(t, false)
	Log("hello %d", 1)
	LogTiming("x", time.Second)
	Section("s")
	Dump("v", 3)
	LogEnterExit("f")()
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestEnabledWrites(t *testing.T) {
	buf := withBuffer(t, true)
	Log("laid out %d items", 5)
	LogIf(false, "hidden")
	LogIf(true, "shown")
	Section("layout")
	Logw("resize", "w", 800)
	Sync()

	out := buf.String()
	for _, want := range []string{"laid out 5 items", "shown", "=== layout ===", "resize", "DEBUG"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("LogIf(false) wrote output:\n%s", out)
	}
}

func TestLogEnterExit(t *testing.T) {
	buf := withBuffer(t, true)
	LogEnterExit("work")()
	out := buf.String()
	if !strings.Contains(out, "-> work") || !strings.Contains(out, "<- work") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
