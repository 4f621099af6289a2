package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yettinmoor/bard/internal/models"
)

func TestParseBarConfigDefaults(t *testing.T) {
	cfg, err := ParseBarConfig([]byte(`
blocks:
  date:
    cmd: date +%H:%M
`))
	if err != nil {
		t.Fatalf("ParseBarConfig() error = %v", err)
	}

	if cfg.Delim != models.DefaultDelim {
		t.Errorf("Delim = %q, want %q", cfg.Delim, models.DefaultDelim)
	}
	if cfg.Prefix != models.DefaultPrefix {
		t.Errorf("Prefix = %q, want %q", cfg.Prefix, models.DefaultPrefix)
	}
	if cfg.Suffix != models.DefaultSuffix {
		t.Errorf("Suffix = %q, want %q", cfg.Suffix, models.DefaultSuffix)
	}
	if cfg.Publish != models.PublishXSetRoot {
		t.Errorf("Publish = %q, want %q", cfg.Publish, models.PublishXSetRoot)
	}
}

func TestParseBarConfigKeepsBlockOrder(t *testing.T) {
	cfg, err := ParseBarConfig([]byte(`
delim: " :: "
prefix: "["
suffix: "]"
publish: stdout
blocks:
  volume:
    cmd: pamixer --get-volume
    prefix: VOL
  battery:
    cmd: cat /sys/class/power_supply/BAT0/capacity
  date:
    cmd: date
    prefix: T
`))
	if err != nil {
		t.Fatalf("ParseBarConfig() error = %v", err)
	}

	want := []models.BlockConfig{
		{Name: "volume", Cmd: "pamixer --get-volume", Prefix: "VOL"},
		{Name: "battery", Cmd: "cat /sys/class/power_supply/BAT0/capacity"},
		{Name: "date", Cmd: "date", Prefix: "T"},
	}
	if len(cfg.Blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d", len(cfg.Blocks), len(want))
	}
	for i, b := range cfg.Blocks {
		if b != want[i] {
			t.Errorf("block %d = %+v, want %+v", i, b, want[i])
		}
	}

	if cfg.Delim != " :: " || cfg.Prefix != "[" || cfg.Suffix != "]" {
		t.Errorf("layout = %q %q %q", cfg.Delim, cfg.Prefix, cfg.Suffix)
	}
	if cfg.Publish != models.PublishStdout {
		t.Errorf("Publish = %q, want stdout", cfg.Publish)
	}
}

func TestParseBarConfigNullSettingKeepsDefault(t *testing.T) {
	cfg, err := ParseBarConfig([]byte("delim:\nblocks:\n  a:\n    cmd: echo a\n"))
	if err != nil {
		t.Fatalf("ParseBarConfig() error = %v", err)
	}
	if cfg.Delim != models.DefaultDelim {
		t.Errorf("Delim = %q, want default", cfg.Delim)
	}
}

func TestParseBarConfigNonStringSettingKeepsDefault(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"integer", "delim: 5\n", models.DefaultDelim},
		{"boolean", "delim: true\n", models.DefaultDelim},
		{"float", "delim: 1.5\n", models.DefaultDelim},
		{"quoted number", "delim: '5'\n", "5"},
		{"plain string", "delim: ' / '\n", " / "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseBarConfig([]byte(tt.input + "blocks:\n  a:\n    cmd: echo a\n"))
			if err != nil {
				t.Fatalf("ParseBarConfig() error = %v", err)
			}
			if cfg.Delim != tt.want {
				t.Errorf("Delim = %q, want %q", cfg.Delim, tt.want)
			}
		})
	}
}

func TestParseBarConfigErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		structural bool
		contains   string
	}{
		{
			name:     "invalid yaml",
			input:    "blocks: [unterminated",
			contains: "parse error",
		},
		{
			name:     "empty document",
			input:    "",
			contains: "not a proper yaml hash",
		},
		{
			name:     "top level is a list",
			input:    "- a\n- b\n",
			contains: "not a proper yaml hash",
		},
		{
			name:       "missing blocks",
			input:      "delim: ' | '\n",
			structural: true,
			contains:   "expected `blocks` hash",
		},
		{
			name:       "blocks is a list",
			input:      "blocks:\n  - date\n",
			structural: true,
			contains:   "expected `blocks` hash",
		},
		{
			name:       "block without cmd",
			input:      "blocks:\n  date:\n    prefix: T\n",
			structural: true,
			contains:   "expected `cmd` field in [date]",
		},
		{
			name:       "block that is not a mapping",
			input:      "blocks:\n  date: date +%H\n",
			structural: true,
			contains:   "expected `cmd` field in [date]",
		},
		{
			name:     "duplicate block",
			input:    "blocks:\n  a:\n    cmd: echo 1\n  a:\n    cmd: echo 2\n",
			contains: "duplicate block name [a]",
		},
		{
			name:       "unknown publish mode",
			input:      "publish: lemonbar\nblocks:\n  a:\n    cmd: echo a\n",
			structural: true,
			contains:   "unknown publish mode",
		},
		{
			name:       "delim is a mapping",
			input:      "delim:\n  x: y\nblocks:\n  a:\n    cmd: echo a\n",
			structural: true,
			contains:   "expected `delim` to be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBarConfig([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var serr *StructureError
			var perr *ParseError
			if tt.structural && !errors.As(err, &serr) {
				t.Errorf("error %T is not a StructureError", err)
			}
			if !tt.structural && !errors.As(err, &perr) {
				t.Errorf("error %T is not a ParseError", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestLoadBarConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := LoadBarConfig(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("LoadBarConfig() error = %v, want ParseError", err)
	}
	if perr.Path != path {
		t.Errorf("Path = %q, want %q", perr.Path, path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist: %v", err)
	}
}

func TestLoadBarConfigRecordsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bard.yaml")
	if err := os.WriteFile(path, []byte("blocks: {"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadBarConfig(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("LoadBarConfig() error = %v, want ParseError", err)
	}
	if perr.Path != path {
		t.Errorf("Path = %q, want %q", perr.Path, path)
	}
}
