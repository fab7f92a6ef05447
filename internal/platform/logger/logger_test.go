package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogger_TextFormat_SortedKeysAndLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatText, App: "medremind", Out: &buf})

	l.Debug("hidden", nil)
	l.Info("hello", map[string]any{"zeta": 1, "alpha": "a"})

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered, got %q", out)
	}
	if !strings.Contains(out, "alpha=a app=medremind level=info msg=hello") {
		t.Fatalf("unexpected text line: %q", out)
	}
	if !strings.HasSuffix(out, "zeta=1") {
		t.Fatalf("expected sorted keys ending with zeta, got %q", out)
	}
}

func TestLogger_JSONFormat_WithFieldsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatJSON, Out: &buf}).
		With(map[string]any{"request_id": "r-1"})

	l.Error("boom", map[string]any{"err": errors.New("db down")})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	if entry["request_id"] != "r-1" || entry["err"] != "db down" || entry["level"] != "error" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	cases := map[string]Level{"debug": Debug, "WARNING": Warn, "error": Error, "": Info, "nope": Info}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if ParseFormat(" JSON ") != FormatJSON || ParseFormat("xml") != FormatText {
		t.Fatalf("ParseFormat mismatch")
	}
}

func TestFromContext_FallsBack(t *testing.T) {
	fb := Nop()
	if FromContext(context.Background(), fb) != fb {
		t.Fatalf("expected fallback logger")
	}

	var buf bytes.Buffer
	l := New(Options{Out: &buf})
	ctx := WithContext(context.Background(), l)
	FromContext(ctx, fb).Info("from ctx", nil)
	if !strings.Contains(buf.String(), "from ctx") {
		t.Fatalf("expected context logger to be used")
	}
}
