// Package publish delivers rendered bars to the window manager or other sinks.
// Publishing is best-effort: callers log errors and carry on.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/yettinmoor/bard/internal/models"
)

// Publisher makes a rendered bar visible somewhere.
type Publisher interface {
	Publish(ctx context.Context, bar string) error
}

// Func adapts a function to the Publisher interface.
type Func func(ctx context.Context, bar string) error

// Publish calls f.
func (f Func) Publish(ctx context.Context, bar string) error {
	return f(ctx, bar)
}

// Resolver picks the publisher for a configured publish mode. It is called
// again on every config reload.
type Resolver func(mode models.PublishMode) Publisher

// XSetRoot sets the root window name, which dwm-style window managers show
// as their status text.
type XSetRoot struct {
	// Path of the xsetroot binary; empty means look it up in PATH.
	Path string
}

// Publish runs `xsetroot -name bar`.
func (x XSetRoot) Publish(ctx context.Context, bar string) error {
	path := x.Path
	if path == "" {
		path = "xsetroot"
	}
	out, err := exec.CommandContext(ctx, path, "-name", bar).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("xsetroot failed: %w: %s", err, msg)
		}
		return fmt.Errorf("xsetroot failed: %w", err)
	}
	return nil
}

// Writer prints each bar as one line, for bars that read from a pipe.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter creates a line publisher writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Publish writes bar followed by a newline.
func (p *Writer) Publish(_ context.Context, bar string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintln(p.w, bar)
	return err
}

// Multi publishes to every sink in order and joins their errors.
type Multi []Publisher

// Publish sends bar to each publisher.
func (m Multi) Publish(ctx context.Context, bar string) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, bar); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every bar.
var Discard Publisher = Func(func(context.Context, string) error { return nil })

// Default maps publish modes to the built-in sinks.
func Default(mode models.PublishMode) Publisher {
	switch mode {
	case models.PublishStdout:
		return NewWriter(os.Stdout)
	case models.PublishNone:
		return Discard
	default:
		return XSetRoot{}
	}
}

// With returns a resolver that also publishes to extra, whatever the mode.
func With(base Resolver, extra ...Publisher) Resolver {
	return func(mode models.PublishMode) Publisher {
		return append(Multi{base(mode)}, extra...)
	}
}
