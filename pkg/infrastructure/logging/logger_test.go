package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"", LevelInfo, false},
		{"info", LevelInfo, false},
		{"DEBUG", LevelDebug, false},
		{" off ", LevelOff, false},
		{"trace", "", true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLevel(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLevel(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q): expected %s, got %s", tt.input, tt.want, got)
		}
	}
}

func TestNew(t *testing.T) {
	off, err := New(LevelOff)
	if err != nil {
		t.Fatalf("Failed to build off logger: %v", err)
	}
	if off.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("Expected off logger to be disabled")
	}

	info, err := New(LevelInfo)
	if err != nil {
		t.Fatalf("Failed to build info logger: %v", err)
	}
	if info.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Expected info logger to drop debug entries")
	}

	debug, err := New(LevelDebug)
	if err != nil {
		t.Fatalf("Failed to build debug logger: %v", err)
	}
	if !debug.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Expected debug logger to accept debug entries")
	}
}
