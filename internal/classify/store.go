package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRules reads a rule table from a YAML file. The file holds a list of
// rules under a top-level "rules" key, in priority order.
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- rule files come from user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %s: %w", path, err)
	}

	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse rule file %s: %w", path, err)
	}
	if len(rs.Rules) == 0 {
		return nil, fmt.Errorf("rule file %s contains no rules", path)
	}
	return &rs, nil
}

// SaveRules writes a rule table to a YAML file, preserving rule order.
func SaveRules(rs *RuleSet, path string) error {
	data, err := yaml.Marshal(rs)
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write rule file %s: %w", path, err)
	}
	return nil
}
