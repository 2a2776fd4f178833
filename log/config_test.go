package log

import (
	"slices"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"Info", LevelInfo},
		{"warn", LevelWarn},
		{"ERROR", LevelError},
		{"", DefaultLevel},
		{"verbose", DefaultLevel},
		{"warn+2", LevelWarn + 2},
	} {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	for _, tt := range []struct {
		level Level
		want  string
	}{
		{LevelTrace, "trace"},
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
	} {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{" text ", FormatText},
		{"", DefaultFormat},
		{"yaml", DefaultFormat},
	} {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelsAndFormats(t *testing.T) {
	levels := slices.Collect(Levels())

	want := []string{"trace", "debug", "info", "warn", "error"}
	if !slices.Equal(levels, want) {
		t.Errorf("Levels() = %v, want %v", levels, want)
	}

	formats := slices.Collect(Formats())
	if !slices.Equal(formats, []string{"json", "text"}) {
		t.Errorf("Formats() = %v", formats)
	}
}

func TestMakeFormatTimeFunc(t *testing.T) {
	ref := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)

	for _, tt := range []struct {
		name   string
		layout string
		want   string
	}{
		{"named layout", "RFC3339", "2026-03-14T15:09:26Z"},
		{"case and punctuation ignored", "rfc-3339", "2026-03-14T15:09:26Z"},
		{"custom layout verbatim", "2006/01/02", "2026/03/14"},
		{"none disables", "none", ""},
		{"empty disables", "  ", ""},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if got := makeFormatTimeFunc(tt.layout)(ref); got != tt.want {
				t.Errorf("format(%q) = %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}
