package models

// Bar layout defaults used when bard.yaml omits a setting.
const (
	DefaultDelim  = " | "
	DefaultPrefix = " "
	DefaultSuffix = " "
)

// PublishMode selects where the daemon sends a rendered bar.
type PublishMode string

const (
	PublishXSetRoot PublishMode = "xsetroot"
	PublishStdout   PublishMode = "stdout"
	PublishNone     PublishMode = "none"
)

// Valid reports whether m is a known publish mode.
func (m PublishMode) Valid() bool {
	switch m {
	case PublishXSetRoot, PublishStdout, PublishNone:
		return true
	}
	return false
}

// BlockConfig is one entry of the `blocks` mapping.
type BlockConfig struct {
	Name   string `yaml:"-"` // mapping key
	Cmd    string `yaml:"cmd"`
	Prefix string `yaml:"prefix,omitempty"` // empty = no prefix
}

// BarConfig represents a parsed bard.yaml.
// Blocks keep the order they appear in the file.
type BarConfig struct {
	Delim   string        `yaml:"delim"`
	Prefix  string        `yaml:"prefix"`
	Suffix  string        `yaml:"suffix"`
	Publish PublishMode   `yaml:"publish"`
	Blocks  []BlockConfig `yaml:"-"`
}

// NewBarConfig creates a bar config with default values and no blocks.
func NewBarConfig() *BarConfig {
	return &BarConfig{
		Delim:   DefaultDelim,
		Prefix:  DefaultPrefix,
		Suffix:  DefaultSuffix,
		Publish: PublishXSetRoot,
	}
}

// BlockNames returns the block names in bar order.
func (c *BarConfig) BlockNames() []string {
	names := make([]string, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		names = append(names, b.Name)
	}
	return names
}
