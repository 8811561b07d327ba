package options

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Rule is a caller-supplied webpack rule, passed through unvalidated.
type Rule map[string]any

// RuleSet holds extra rules. In files it may be written either as a single
// rule mapping or as a sequence of rules.
type RuleSet []Rule

// UnmarshalYAML accepts a mapping or a sequence of mappings.
func (rs *RuleSet) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		var rule Rule
		if err := node.Decode(&rule); err != nil {
			return fmt.Errorf("decode rule: %w", err)
		}
		*rs = RuleSet{rule}
	case yaml.SequenceNode:
		var rules []Rule
		if err := node.Decode(&rules); err != nil {
			return fmt.Errorf("decode rules: %w", err)
		}
		*rs = rules
	default:
		return fmt.Errorf("line %d: rules must be a mapping or a sequence", node.Line)
	}
	return nil
}

// UnmarshalJSON accepts an object or an array of objects.
func (rs *RuleSet) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var rule Rule
		if err := json.Unmarshal(trimmed, &rule); err != nil {
			return fmt.Errorf("decode rule: %w", err)
		}
		*rs = RuleSet{rule}
		return nil
	}

	var rules []Rule
	if err := json.Unmarshal(trimmed, &rules); err != nil {
		return fmt.Errorf("decode rules: %w", err)
	}
	*rs = rules
	return nil
}
