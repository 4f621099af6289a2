package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/yettinmoor/bard/internal/daemon"
)

func TestFormatReportLine(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"[date]: exit status 0", "[date]: exit status 0"},
		{"[bat]: exit status 1, stderr: no battery", "[bat]: exit status 1, stderr: no battery"},
		{"[vol]: set to '50%'", "[vol]: set to '50%'"},
		{"[nope]: block not found", "[nope]: block not found"},
		{"parse error: expected `blocks` hash", "parse error: expected `blocks` hash"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			// stderr is not a terminal under test, so styles render plain
			if got := formatReportLine(tt.line); got != tt.want {
				t.Errorf("formatReportLine(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestDaemonArgs(t *testing.T) {
	tests := []struct {
		name string
		opts daemon.Options
		want []string
	}{
		{"defaults", daemon.Options{}, nil},
		{
			"all",
			daemon.Options{ConfigPath: "/etc/bard.yaml", Tray: true, Watch: true, LogFile: "/tmp/bard.log"},
			[]string{"--config", "/etc/bard.yaml", "--tray", "--watch", "--log-file", "/tmp/bard.log"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := daemonArgs(tt.opts); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("daemonArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaemonArgsAbsolutizesConfig(t *testing.T) {
	args := daemonArgs(daemon.Options{ConfigPath: "bard.yaml"})
	if len(args) != 2 || !filepath.IsAbs(args[1]) {
		t.Errorf("daemonArgs() = %v, want absolute config path", args)
	}
}

func TestUpdateRequiresSelector(t *testing.T) {
	if err := updateCmd.Args(updateCmd, nil); err == nil {
		t.Error("update with no selectors should be rejected")
	}
	if err := updateCmd.Args(updateCmd, []string{"date"}); err != nil {
		t.Errorf("update date: %v", err)
	}
}

func TestCommandTree(t *testing.T) {
	want := []string{"check", "daemon", "draw", "init", "restart", "top", "update", "update-all", "version"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
	if f := rootCmd.PersistentFlags().Lookup("timeout"); f == nil || f.DefValue != "1s" {
		t.Errorf("--timeout flag = %v, want default 1s", f)
	}
}

func TestCheckCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bard.yaml")
	body := "blocks:\n  date:\n    cmd: date +%H:%M\n    prefix: T\n  battery:\n    cmd: cat /sys/class/power_supply/BAT0/capacity\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	checkCmd.SetOut(&out)
	t.Cleanup(func() { checkCmd.SetOut(nil); checkConfigPath = "" })
	checkConfigPath = path

	if err := checkCmd.RunE(checkCmd, nil); err != nil {
		t.Fatalf("check error = %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "ok "+path) {
		t.Errorf("check output missing path:\n%s", got)
	}
	dateAt := strings.Index(got, "date ")
	batteryAt := strings.Index(got, "battery ")
	if dateAt < 0 || batteryAt < 0 || dateAt > batteryAt {
		t.Errorf("blocks missing or out of order:\n%s", got)
	}
	if !strings.Contains(got, "[T] date +%H:%M") {
		t.Errorf("block prefix not shown:\n%s", got)
	}
}

func TestCheckCommandInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bard.yaml")
	if err := os.WriteFile(path, []byte("blocks:\n  a:\n    prefix: x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	checkConfigPath = path
	t.Cleanup(func() { checkConfigPath = "" })

	err := checkCmd.RunE(checkCmd, nil)
	if err == nil || err.Error() != "parse error: expected `cmd` field in [a]" {
		t.Errorf("check error = %v", err)
	}
}
