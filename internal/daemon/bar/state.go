// Package bar holds the daemon's block registry and renders the status bar.
//
// A State is either ready (the config parsed and blocks are live) or
// degraded (the config failed to load). Degraded states answer every
// request with the config error and touch no blocks; only Restart can leave
// that mode. State is not safe for concurrent use: the server serializes
// every call behind one lock.
package bar

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yettinmoor/bard/internal/config"
	"github.com/yettinmoor/bard/internal/daemon/block"
	"github.com/yettinmoor/bard/internal/daemon/publish"
	"github.com/yettinmoor/bard/internal/models"
)

// ErrDegraded is returned by DrawBar while the configuration is invalid.
var ErrDegraded = errors.New("bar unavailable: configuration is invalid")

// State is the live set of blocks plus the bar layout.
type State struct {
	configPath string
	resolve    publish.Resolver

	err       error // non-nil while degraded
	delim     string
	prefix    string
	suffix    string
	blocks    []*block.Block
	publisher publish.Publisher
	lastBar   string
}

// New builds a state from the config at configPath. Loading works exactly
// like Restart: on success every block runs once and the bar is drawn; on
// failure the state starts out degraded. A nil resolver uses
// publish.Default.
func New(ctx context.Context, configPath string, resolve publish.Resolver) *State {
	if resolve == nil {
		resolve = publish.Default
	}
	s := &State{configPath: configPath, resolve: resolve}
	_ = s.Restart(ctx)
	return s
}

// ConfigPath returns the path the state is (re)built from.
func (s *State) ConfigPath() string {
	return s.configPath
}

// Ready reports whether the last load succeeded.
func (s *State) Ready() bool {
	return s.err == nil
}

// Err returns the config error while degraded, nil otherwise.
func (s *State) Err() error {
	return s.err
}

// BlockNames returns the live block names in bar order.
func (s *State) BlockNames() []string {
	names := make([]string, 0, len(s.blocks))
	for _, b := range s.blocks {
		names = append(names, b.Name())
	}
	return names
}

// LastBar returns the most recently drawn bar, which survives a failed
// restart.
func (s *State) LastBar() string {
	return s.lastBar
}

// Restart re-reads the config and replaces every block and setting. On
// success it runs all blocks and draws the bar. On failure the state becomes
// degraded; the returned error is informational only.
func (s *State) Restart(ctx context.Context) error {
	cfg, err := config.LoadBarConfig(s.configPath)
	if err != nil {
		s.err = err
		s.blocks = nil
		s.publisher = nil
		log.Printf("[state] %v", err)
		return err
	}

	s.apply(cfg)
	log.Printf("[state] init: [%s]", strings.Join(s.BlockNames(), " "))

	_, _ = s.UpdateAll(ctx)
	_, _ = s.DrawBar(ctx)
	return nil
}

func (s *State) apply(cfg *models.BarConfig) {
	s.err = nil
	s.delim = cfg.Delim
	s.prefix = cfg.Prefix
	s.suffix = cfg.Suffix
	s.publisher = s.resolve(cfg.Publish)

	s.blocks = make([]*block.Block, 0, len(cfg.Blocks))
	for _, bc := range cfg.Blocks {
		s.blocks = append(s.blocks, block.FromConfig(bc))
	}
}

// Update applies each selector in order ("name" re-runs the block,
// "name:text" sets its output) and returns one report line per selector.
// Unknown names are reported and skipped. ok is false only when degraded.
func (s *State) Update(ctx context.Context, selectors []string) (ok bool, report string) {
	if s.err != nil {
		return false, s.degradedReport()
	}

	lines := make([]string, 0, len(selectors))
	for _, sel := range block.ParseSelectors(selectors) {
		b := s.find(sel.Name)
		if b == nil {
			lines = append(lines, fmt.Sprintf("[%s]: block not found", sel.Name))
			continue
		}
		lines = append(lines, sel.Apply(ctx, b))
	}
	return true, s.report(lines)
}

// UpdateAll runs every block in bar order.
func (s *State) UpdateAll(ctx context.Context) (ok bool, report string) {
	if s.err != nil {
		return false, s.degradedReport()
	}

	lines := make([]string, 0, len(s.blocks))
	for _, b := range s.blocks {
		lines = append(lines, b.Run(ctx))
	}
	return true, s.report(lines)
}

// DrawBar joins the cached outputs of all non-empty blocks with the
// delimiter, wraps them in prefix and suffix, and publishes the result.
// No command is run. Publish failures are logged, not returned.
func (s *State) DrawBar(ctx context.Context) (string, error) {
	if s.err != nil {
		return "", fmt.Errorf("%w: %w", ErrDegraded, s.err)
	}

	segments := make([]string, 0, len(s.blocks))
	for _, b := range s.blocks {
		if seg, ok := b.Draw(); ok {
			segments = append(segments, seg)
		}
	}
	bar := s.prefix + strings.Join(segments, s.delim) + s.suffix

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, bar); err != nil {
			log.Printf("[publish] %v", err)
		}
	}
	log.Printf("[state] draw_bar: `%s`", bar)

	s.lastBar = bar
	return bar, nil
}

func (s *State) find(name string) *block.Block {
	for _, b := range s.blocks {
		if b.Name() == name {
			return b
		}
	}
	return nil
}

func (s *State) report(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	report := strings.Join(lines, "\n") + "\n"
	log.Printf("[state] %s", strings.Join(lines, "; "))
	return report
}

func (s *State) degradedReport() string {
	log.Printf("[state] %v", s.err)
	return s.err.Error() + "\n"
}
