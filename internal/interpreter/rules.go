package interpreter

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var rulesYAML []byte

// filterRule assigns one filter field when any of its phrases appears in the
// question. Rules run in file order; a later event_type rule overrides an
// earlier match.
type filterRule struct {
	Field   string   `yaml:"field"`
	Value   string   `yaml:"value,omitempty"`
	Phrases []string `yaml:"phrases"`
}

type intentRules struct {
	Report   []string `yaml:"report"`
	Quantity []string `yaml:"quantity"`
}

type ruleSet struct {
	Intent  intentRules  `yaml:"intent"`
	Filters []filterRule `yaml:"filters"`
}

func mustLoadRules() ruleSet {
	var rs ruleSet
	if err := yaml.Unmarshal(rulesYAML, &rs); err != nil {
		panic(fmt.Sprintf("interpreter: embedded rules.yaml malformed: %v", err))
	}
	if len(rs.Filters) == 0 {
		panic("interpreter: embedded rules.yaml has no filter rules")
	}
	return rs
}
