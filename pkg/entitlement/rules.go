package entitlement

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules describe the default predicate set in data form.
//
//	flags: [hasPremiumPlan]
//	fields: [plan, subscription, tier, membership, role]
//	keywords: [premium, pro, paid, plus]
type Rules struct {
	Flags    []string `yaml:"flags"`
	Fields   []string `yaml:"fields"`
	Keywords []string `yaml:"keywords"`
}

// DefaultRules returns the built-in premium indicators.
func DefaultRules() Rules {
	return Rules{
		Flags:    []string{"hasPremiumPlan"},
		Fields:   []string{"plan", "subscription", "tier", "membership", "role"},
		Keywords: []string{"premium", "pro", "paid", "plus"},
	}
}

// LoadRules reads rules from a YAML file. Lists omitted from the file keep
// their default values.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, errors.Join(ErrInvalidRules, fmt.Errorf("read %s: %w", path, err))
	}

	var file Rules
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Rules{}, errors.Join(ErrInvalidRules, fmt.Errorf("parse %s: %w", path, err))
	}

	rules := DefaultRules()
	if file.Flags != nil {
		rules.Flags = file.Flags
	}
	if file.Fields != nil {
		rules.Fields = file.Fields
	}
	if file.Keywords != nil {
		rules.Keywords = file.Keywords
	}
	return rules, nil
}

// Classifier builds the predicate chain: flags, then named fields, then any value.
func (r Rules) Classifier() *Classifier {
	return NewClassifier(
		FlagPredicate(r.Flags...),
		NamedFieldPredicate(r.Fields, r.Keywords),
		AnyValuePredicate(r.Keywords),
	)
}
