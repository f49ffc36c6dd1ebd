package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_EmptyLevelIsSilent(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("", &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	log.Error("should not appear")
	if buf.Len() != 0 {
		t.Errorf("wrote %q, want nothing", buf.String())
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("warn", &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	log.Info("hidden")
	log.Warn("could not fetch control")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "could not fetch control") {
		t.Errorf("output = %q, want warning", out)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("loud", &bytes.Buffer{}); err == nil {
		t.Error("New(loud) err = nil, want error")
	}
}

func TestLevel(t *testing.T) {
	t.Setenv(LevelEnvVar, "")
	if got := Level("info"); got != "info" {
		t.Errorf("Level(info) = %q, want info", got)
	}
	t.Setenv(LevelEnvVar, "debug")
	if got := Level("info"); got != "debug" {
		t.Errorf("Level(info) with env = %q, want debug", got)
	}
}
