package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "seedclean.dev/pkg/seedclean/internal/model"
)

func TestDefaultRuleSet(t *testing.T) {
	rules := DefaultRuleSet()

	require.NoError(t, ValidateRuleSet(rules))
	require.Len(t, rules.Rules, 3)
	assert.Equal(t, "description:", rules.Rules[0].DropPrefix)
	assert.Equal(t, "longDescription:", rules.Rules[1].DropPrefix)
	assert.Equal(t, "type:", rules.Rules[2].DropPrefix)
	assert.Equal(t, "];", rules.EndToken)
}

func TestValidateRuleSet(t *testing.T) {
	valid := m.BlockRule{Name: "a", StartMarker: "a = [", DropPrefix: "x:"}

	tooMany := make([]m.BlockRule, maxRules+1)
	for i := range tooMany {
		tooMany[i] = m.BlockRule{Name: fmt.Sprintf("r%d", i), StartMarker: "s", DropPrefix: "p"}
	}

	tests := []struct {
		name  string
		rules m.RuleSet
	}{
		{"no rules", m.RuleSet{EndToken: "];"}},
		{"blank end token", m.RuleSet{Rules: []m.BlockRule{valid}, EndToken: "  "}},
		{"missing name", m.RuleSet{Rules: []m.BlockRule{{StartMarker: "s", DropPrefix: "p"}}, EndToken: "];"}},
		{"missing start marker", m.RuleSet{Rules: []m.BlockRule{{Name: "a", DropPrefix: "p"}}, EndToken: "];"}},
		{"missing drop prefix", m.RuleSet{Rules: []m.BlockRule{{Name: "a", StartMarker: "s"}}, EndToken: "];"}},
		{"duplicate name", m.RuleSet{Rules: []m.BlockRule{valid, valid}, EndToken: "];"}},
		{"too many rules", m.RuleSet{Rules: tooMany, EndToken: "];"}},
		{"padded end token", m.RuleSet{Rules: []m.BlockRule{valid}, EndToken: " ]; "}},
		{"end token with trailing newline", m.RuleSet{Rules: []m.BlockRule{valid}, EndToken: "];\n"}},
		{"padded drop prefix", m.RuleSet{Rules: []m.BlockRule{{Name: "a", StartMarker: "s", DropPrefix: "  description:"}}, EndToken: "];"}},
		{"drop prefix with trailing space", m.RuleSet{Rules: []m.BlockRule{{Name: "a", StartMarker: "s", DropPrefix: "type: "}}, EndToken: "];"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRuleSet(tt.rules)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRuleSet)
		})
	}
}

func TestValidateRuleSet_PaddedRulesWouldNeverMatch(t *testing.T) {
	rules := DefaultRuleSet()
	rules.Rules[0].DropPrefix = "  description:"
	rules.EndToken = " ]; "

	require.ErrorIs(t, ValidateRuleSet(rules), ErrInvalidRuleSet)

	// Unvalidated, the same rules silently drop nothing.
	result := FilterLines(rules, []string{
		"const categories: InsertCategory[] = [\n",
		"  description: \"x\",\n",
		"];\n",
	})
	assert.Empty(t, result.Dropped)
}
