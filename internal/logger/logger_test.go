package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/arifshehab/Capstone-Project/internal/config"
)

func TestNew_JSONToFileCarriesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := New(config.LogConfig{Level: "debug", Encoding: "JSON", Output: path}, "test")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	l.Info("trade recorded")
	_ = l.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	line := string(raw)
	for _, frag := range []string{`"msg":"trade recorded"`, `"env":"test"`, `"logger":"portfolio"`} {
		if !strings.Contains(line, frag) {
			t.Fatalf("missing %s in %s", frag, line)
		}
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	l, err := New(config.LogConfig{Level: "loud", Output: filepath.Join(t.TempDir(), "x.log")}, "")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug enabled, want info")
	}
}
