package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"Warn":    slog.LevelWarn,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestPackageLoggerPicksUpInit(t *testing.T) {
	log := L("testcomp")

	var buf bytes.Buffer
	Init("text", "info", &buf)
	defer Init("text", "info", nil)

	log.Info("hello")

	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Fatalf("log output missing message: %s", out)
	}
	if !strings.Contains(out, "component=testcomp") {
		t.Fatalf("log output missing component attr: %s", out)
	}
}

func TestInitJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init("json", "debug", &buf)
	defer Init("text", "info", nil)

	L("fmt").Debug("structured")

	if !strings.Contains(buf.String(), `"msg":"structured"`) {
		t.Fatalf("expected JSON output, got: %s", buf.String())
	}
}
