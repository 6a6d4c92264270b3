// Package classify implements keyword-based transaction classification as a
// data-driven rule table. Each rule pairs a label with a keyword set; rules
// are evaluated in declaration order against uppercase transaction text, and
// the first match wins. Keeping the table data-driven means new keywords are
// configuration, not control-flow changes.
package classify

import (
	"strings"
)

// Rule maps a keyword set to a label. Matching is a case-insensitive
// substring test, the same fuzzy technique used for merchant categorization
// elsewhere in this codebase.
type Rule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// RuleSet is an ordered list of rules. Order is priority: the first rule
// whose keyword appears in any of the probed texts decides the label.
type RuleSet struct {
	Rules []Rule `yaml:"rules"`
}

// NewRuleSet builds a RuleSet from rules in priority order.
func NewRuleSet(rules ...Rule) *RuleSet {
	return &RuleSet{Rules: rules}
}

// Match probes the given texts against the rule table and returns the label
// of the first matching rule. The boolean is false when nothing matches.
func (rs *RuleSet) Match(texts ...string) (string, bool) {
	probes := make([]string, 0, len(texts))
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t != "" {
			probes = append(probes, strings.ToUpper(t))
		}
	}
	if len(probes) == 0 {
		return "", false
	}

	for _, rule := range rs.Rules {
		for _, keyword := range rule.Keywords {
			kw := strings.ToUpper(keyword)
			for _, probe := range probes {
				if strings.Contains(probe, kw) {
					return rule.Label, true
				}
			}
		}
	}
	return "", false
}

// Labels returns the distinct labels of the rule table, in rule order.
func (rs *RuleSet) Labels() []string {
	seen := make(map[string]bool, len(rs.Rules))
	labels := make([]string, 0, len(rs.Rules))
	for _, r := range rs.Rules {
		if !seen[r.Label] {
			seen[r.Label] = true
			labels = append(labels, r.Label)
		}
	}
	return labels
}
