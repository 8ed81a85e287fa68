package entitlement

import "strings"

// Config holds operator settings for entitlement resolution.
type Config struct {
	ForcePremium   bool     `env:"FORCE_PREMIUM" envDefault:"false"`
	PremiumUserIDs []string `env:"PREMIUM_USER_IDS" envSeparator:","`
	RulesFile      string   `env:"ENTITLEMENT_RULES_FILE"`
}

// Overrides converts the config into resolver overrides, dropping blank IDs.
func (c Config) Overrides() Overrides {
	ids := make([]string, 0, len(c.PremiumUserIDs))
	for _, id := range c.PremiumUserIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return Overrides{ForcePremium: c.ForcePremium, PremiumAccountIDs: ids}
}

// Classifier returns the classifier described by RulesFile, or the default
// classifier when no file is set.
func (c Config) Classifier() (*Classifier, error) {
	if c.RulesFile == "" {
		return DefaultClassifier(), nil
	}
	rules, err := LoadRules(c.RulesFile)
	if err != nil {
		return nil, err
	}
	return rules.Classifier(), nil
}
