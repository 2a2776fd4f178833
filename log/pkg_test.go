package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestPackageDefaultLogger(t *testing.T) {
	original := defaultLog
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	defaultLog = Make(&buf,
		WithLevel(LevelTrace),
		WithFormat(FormatJSON),
		WithPretty(false),
	)

	for _, tt := range []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()

			tt.fn("package message", slog.String("key", "value"))

			out := buf.String()

			if !strings.Contains(out, "package message") {
				t.Errorf("message missing: %s", out)
			}

			if !strings.Contains(out, tt.level) {
				t.Errorf("level %q missing: %s", tt.level, out)
			}

			if !strings.Contains(out, `"key":"value"`) {
				t.Errorf("attribute missing: %s", out)
			}
		})
	}
}

func TestPackageConfig(t *testing.T) {
	original := defaultLog
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	defaultLog = Make(&buf, WithPretty(false))

	Config(WithLevel(LevelError))

	Info("dropped after reconfigure")

	if buf.Len() != 0 {
		t.Errorf("info emitted at error level: %s", buf.String())
	}

	if Default().Level() != LevelError {
		t.Errorf("Default().Level() = %v, want error", Default().Level())
	}
}
