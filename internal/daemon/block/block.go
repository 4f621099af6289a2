// Package block implements a single bar segment backed by a shell command.
package block

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/yettinmoor/bard/internal/models"
)

// Shell is the interpreter used to run block commands.
const Shell = "sh"

// Block is one named segment of the bar. It caches the output of its last
// run; an empty output means the block is left out of the bar.
type Block struct {
	name       string
	cmd        string
	prefix     string
	lastOutput string
}

// New creates a block with no cached output.
func New(name, cmd, prefix string) *Block {
	return &Block{name: name, cmd: cmd, prefix: prefix}
}

// FromConfig creates a block from its bard.yaml entry.
func FromConfig(c models.BlockConfig) *Block {
	return New(c.Name, c.Cmd, c.Prefix)
}

// Name returns the block's name.
func (b *Block) Name() string { return b.name }

// Command returns the shell command the block runs.
func (b *Block) Command() string { return b.cmd }

// Prefix returns the display prefix, or "" when none is configured.
func (b *Block) Prefix() string { return b.prefix }

// Output returns the cached output.
func (b *Block) Output() string { return b.lastOutput }

// Run executes the command with `sh -c`, waits for it, and caches its
// standard output collapsed onto one line. It returns a one-line report
// of the form "[name]: exit status N"; stderr is appended only when the
// command failed. Failures are never returned as errors.
func (b *Block) Run(ctx context.Context) string {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, Shell, "-c", b.cmd)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if cmd.ProcessState == nil {
		// The shell never started; keep the previous output.
		return fmt.Sprintf("[%s]: %v", b.name, err)
	}

	b.lastOutput = strings.TrimSpace(strings.ReplaceAll(stdout.String(), "\n", " "))

	report := fmt.Sprintf("[%s]: %s", b.name, cmd.ProcessState)
	if !cmd.ProcessState.Success() {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			report += ", stderr: " + msg
		}
	}
	return report
}

// SetOutput replaces the cached output with text verbatim, without running
// the command.
func (b *Block) SetOutput(text string) string {
	b.lastOutput = text
	return fmt.Sprintf("[%s]: set to '%s'", b.name, text)
}

// Draw returns the block's bar segment. ok is false when the cached output
// is empty and the block should be skipped entirely.
func (b *Block) Draw() (segment string, ok bool) {
	if b.lastOutput == "" {
		return "", false
	}
	if b.prefix != "" {
		return b.prefix + " " + b.lastOutput, true
	}
	return b.lastOutput, true
}
