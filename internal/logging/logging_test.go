package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"docsum/internal/config"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := New(config.LogConfig{Level: "debug", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("summarized", zap.String("source", "a.txt"))
	_ = logger.Sync()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"summarized"`) || !strings.Contains(string(data), `"source":"a.txt"`) {
		t.Fatalf("unexpected log output: %s", data)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "loud", Format: "json"}); err == nil {
		t.Fatalf("expected error for bad level")
	}
	if _, err := New(config.LogConfig{Level: "info", Format: "xml"}); err == nil {
		t.Fatalf("expected error for bad format")
	}
}

func TestForTerminalUI(t *testing.T) {
	base := zap.NewExample()
	if got := ForTerminalUI(config.LogConfig{Output: "stderr"}, base); got == base {
		t.Fatalf("expected nop logger for stderr output")
	}
	if got := ForTerminalUI(config.LogConfig{Output: "/var/log/docsum.log"}, base); got != base {
		t.Fatalf("expected file logger to be kept")
	}
}
