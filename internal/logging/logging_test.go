package logging

import (
	"os"
	"path/filepath"
	"testing"

	"fitcoach/internal/config"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"", false},
		{"debug", false},
		{"warn", false},
		{"chatty", true},
	}
	for _, tt := range tests {
		_, err := New(config.LogConfig{Level: tt.level})
		if (err != nil) != tt.wantErr {
			t.Errorf("New(level=%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
		}
	}
}

func TestNewFile_WritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fitcoach.log")
	logger, err := NewFile(config.LogConfig{Level: "info"}, path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	logger.Info("plan recomputed")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected log output in file")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Error("OrNop(nil) returned nil")
	}
}
