package domain

import (
	"errors"
	"fmt"
	"strings"

	m "seedclean.dev/pkg/seedclean/internal/model"
)

// Built-in markers of the seed file.
const (
	CategoriesStartMarker  = "const categories: InsertCategory[] = ["
	ServicesStartMarker    = "const services: InsertService[] = ["
	SiteContentStartMarker = "const siteContentItems: InsertSiteContent[] = ["
	DefaultEndToken        = "];"

	// maxRules is the width of ScanState.
	maxRules = 64
)

// ErrInvalidRuleSet is returned when a rule set cannot drive a scan.
var ErrInvalidRuleSet = errors.New("invalid rule set")

// DefaultRuleSet returns the categories, services and site content rules in
// priority order.
func DefaultRuleSet() m.RuleSet {
	return m.RuleSet{
		Rules: []m.BlockRule{
			{Name: "categories", StartMarker: CategoriesStartMarker, DropPrefix: "description:"},
			{Name: "services", StartMarker: ServicesStartMarker, DropPrefix: "longDescription:"},
			{Name: "siteContent", StartMarker: SiteContentStartMarker, DropPrefix: "type:"},
		},
		EndToken: DefaultEndToken,
	}
}

// ValidateRuleSet checks that every rule is usable and names are unique.
func ValidateRuleSet(rules m.RuleSet) error {
	if len(rules.Rules) == 0 {
		return fmt.Errorf("%w: no rules", ErrInvalidRuleSet)
	}

	if len(rules.Rules) > maxRules {
		return fmt.Errorf("%w: %d rules exceeds limit of %d", ErrInvalidRuleSet, len(rules.Rules), maxRules)
	}

	if strings.TrimSpace(rules.EndToken) == "" {
		return fmt.Errorf("%w: empty end token", ErrInvalidRuleSet)
	}

	// End tokens and drop prefixes are compared against trimmed lines.
	if strings.TrimSpace(rules.EndToken) != rules.EndToken {
		return fmt.Errorf("%w: end token %q has surrounding whitespace", ErrInvalidRuleSet, rules.EndToken)
	}

	seen := make(map[string]struct{}, len(rules.Rules))

	for i, rule := range rules.Rules {
		switch {
		case rule.Name == "":
			return fmt.Errorf("%w: rule %d has no name", ErrInvalidRuleSet, i)
		case rule.StartMarker == "":
			return fmt.Errorf("%w: rule %q has no start marker", ErrInvalidRuleSet, rule.Name)
		case rule.DropPrefix == "":
			return fmt.Errorf("%w: rule %q has no drop prefix", ErrInvalidRuleSet, rule.Name)
		case strings.TrimSpace(rule.DropPrefix) != rule.DropPrefix:
			return fmt.Errorf("%w: rule %q drop prefix %q has surrounding whitespace", ErrInvalidRuleSet, rule.Name, rule.DropPrefix)
		}

		if _, ok := seen[rule.Name]; ok {
			return fmt.Errorf("%w: duplicate rule %q", ErrInvalidRuleSet, rule.Name)
		}

		seen[rule.Name] = struct{}{}
	}

	return nil
}
