package daemon

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yettinmoor/bard/internal/daemon/server"
)

func TestSetupLoggingWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bard.log")

	closeLog, err := setupLogging(path)
	if err != nil {
		t.Fatalf("setupLogging() error = %v", err)
	}
	log.Printf("[state] init: [a b]")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	line := string(data)
	if !strings.HasPrefix(line, "[bard] ") {
		t.Errorf("log line = %q, want [bard] prefix", line)
	}
	if !strings.Contains(line, "[state] init: [a b]") {
		t.Errorf("log line = %q, missing message", line)
	}
}

func TestSetupLoggingBadPath(t *testing.T) {
	_, err := setupLogging(filepath.Join(t.TempDir(), "missing", "bard.log"))
	if err == nil {
		t.Fatal("setupLogging() should fail for an unwritable path")
	}
}

func TestLazyStateWithoutServer(t *testing.T) {
	l := &lazyState{getSrv: func() *server.Server { return nil }}

	if l.Bar() != "" || l.Problem() != "" {
		t.Error("lazy state without a server should be empty")
	}
	// must not panic
	l.UpdateAll()
	l.Restart()
	l.RequestShutdown()
}
