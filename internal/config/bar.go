package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yettinmoor/bard/internal/models"
)

// ParseError reports a bard.yaml that could not be read or parsed into a
// YAML mapping.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StructureError reports a bard.yaml that parsed but does not have the
// expected shape.
type StructureError struct {
	Block string // offending block, if any
	Field string // missing field, if any
	Msg   string
}

func (e *StructureError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("parse error: expected `%s` field in [%s]", e.Field, e.Block)
	}
	if e.Block != "" {
		return fmt.Sprintf("parse error: [%s]: %s", e.Block, e.Msg)
	}
	return "parse error: " + e.Msg
}

var errNotMapping = errors.New("config is not a proper yaml hash")

// LoadBarConfig reads and parses the bard.yaml at path.
func LoadBarConfig(path string) (*models.BarConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("failed to read config %s: %w", path, err)}
	}

	cfg, err := ParseBarConfig(data)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return cfg, nil
}

// ParseBarConfig parses the contents of a bard.yaml. Blocks are returned in
// document order; settings that are absent keep their defaults.
func ParseBarConfig(data []byte) (*models.BarConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &ParseError{Err: errNotMapping}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{Err: errNotMapping}
	}

	cfg := models.NewBarConfig()
	var blocks *yaml.Node

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "delim":
			if err := decodeSetting(key.Value, val, &cfg.Delim); err != nil {
				return nil, err
			}
		case "prefix":
			if err := decodeSetting(key.Value, val, &cfg.Prefix); err != nil {
				return nil, err
			}
		case "suffix":
			if err := decodeSetting(key.Value, val, &cfg.Suffix); err != nil {
				return nil, err
			}
		case "publish":
			var mode string
			if err := decodeSetting(key.Value, val, &mode); err != nil {
				return nil, err
			}
			if mode != "" {
				cfg.Publish = models.PublishMode(mode)
			}
			if !cfg.Publish.Valid() {
				return nil, &StructureError{Msg: fmt.Sprintf("unknown publish mode %q", mode)}
			}
		case "blocks":
			blocks = val
		}
	}

	if blocks == nil || blocks.Kind != yaml.MappingNode {
		return nil, &StructureError{Msg: "expected `blocks` hash"}
	}

	seen := make(map[string]bool, len(blocks.Content)/2)
	for i := 0; i+1 < len(blocks.Content); i += 2 {
		key, val := blocks.Content[i], blocks.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, &StructureError{Msg: fmt.Sprintf("line %d: block names must be strings", key.Line)}
		}
		name := key.Value
		if seen[name] {
			return nil, &ParseError{Err: fmt.Errorf("line %d: duplicate block name [%s]", key.Line, name)}
		}
		seen[name] = true

		block := models.BlockConfig{Name: name}
		if val.Kind == yaml.MappingNode {
			if err := val.Decode(&block); err != nil {
				return nil, &StructureError{Block: name, Msg: err.Error()}
			}
		}
		if block.Cmd == "" {
			return nil, &StructureError{Block: name, Field: "cmd"}
		}
		cfg.Blocks = append(cfg.Blocks, block)
	}

	return cfg, nil
}

// decodeSetting decodes a string top-level setting. Scalars that are not
// strings (null, numbers, booleans) leave the default in place; quote them
// to use them literally.
func decodeSetting(name string, val *yaml.Node, dst *string) error {
	if val.Kind != yaml.ScalarNode {
		return &StructureError{Msg: fmt.Sprintf("expected `%s` to be a string", name)}
	}
	if val.ShortTag() != "!!str" {
		return nil
	}
	*dst = val.Value
	return nil
}
