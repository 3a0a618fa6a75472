package debuglog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"off", LevelOff},
		{"  info  ", LevelInfo},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLogLevelString(t *testing.T) {
	if LevelDebug.String() != "DEBUG" || LevelError.String() != "ERROR" {
		t.Error("unexpected level string representation")
	}
	if LogLevel(42).String() != "UNKNOWN" {
		t.Error("expected UNKNOWN for out-of-range level")
	}
}

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "test.log")

	if err := Setup(LevelDebug, path); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer func() {
		Close()
		Setup(LevelOff, "")
	}()

	Infof("processed %d articles", 3)
	Debugf("slot assigned")
	Warnf("post too short")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)

	if !strings.Contains(out, "[INFO] processed 3 articles") {
		t.Errorf("missing info line in output: %s", out)
	}
	if !strings.Contains(out, "[DEBUG] slot assigned") {
		t.Errorf("missing debug line in output: %s", out)
	}
	if !strings.Contains(out, "[WARN] post too short") {
		t.Errorf("missing warn line in output: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	if err := Setup(LevelError, path); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer func() {
		Close()
		Setup(LevelOff, "")
	}()

	Infof("should not appear")
	Errorf("should appear")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)

	if strings.Contains(out, "should not appear") {
		t.Error("info line leaked through error-level filter")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("error line missing")
	}
}

func TestOffDisablesLogging(t *testing.T) {
	if err := Setup(LevelOff, ""); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if GetLevel() != LevelOff {
		t.Errorf("expected level off, got %v", GetLevel())
	}
	// must not panic with nil logger
	Infof("ignored")
}
