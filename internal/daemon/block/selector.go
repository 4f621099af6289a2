package block

import (
	"context"
	"strings"
)

// SelectorKind tells whether a selector re-runs a block or sets its text.
type SelectorKind int

const (
	// RunBlock re-executes the named block.
	RunBlock SelectorKind = iota
	// SetBlock replaces the named block's output with literal text.
	SetBlock
)

// Selector is a parsed client token: "name" or "name:text".
type Selector struct {
	Kind SelectorKind
	Name string
	Text string // only for SetBlock
}

// ParseSelector splits s on its first colon. Everything after the colon,
// including further colons, is the literal text.
func ParseSelector(s string) Selector {
	name, text, ok := strings.Cut(s, ":")
	if !ok {
		return Selector{Kind: RunBlock, Name: s}
	}
	return Selector{Kind: SetBlock, Name: name, Text: text}
}

// ParseSelectors parses each token in order.
func ParseSelectors(tokens []string) []Selector {
	sels := make([]Selector, 0, len(tokens))
	for _, t := range tokens {
		sels = append(sels, ParseSelector(t))
	}
	return sels
}

// Apply runs or sets b according to the selector and returns the report line.
func (s Selector) Apply(ctx context.Context, b *Block) string {
	if s.Kind == SetBlock {
		return b.SetOutput(s.Text)
	}
	return b.Run(ctx)
}

func (s Selector) String() string {
	if s.Kind == SetBlock {
		return s.Name + ":" + s.Text
	}
	return s.Name
}
