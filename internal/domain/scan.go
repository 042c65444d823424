package domain

import (
	"strings"

	m "seedclean.dev/pkg/seedclean/internal/model"
)

// ScanState is the set of open blocks, one bit per rule index.
// Opening a block leaves the others untouched; the end token clears all.
type ScanState uint64

// NoBlock is the state before the first line.
const NoBlock ScanState = 0

// Active reports whether the block of rule i is open.
func (s ScanState) Active(i int) bool {
	return s&(1<<uint(i)) != 0
}

func (s ScanState) open(i int) ScanState {
	return s | 1<<uint(i)
}

// Decision is the outcome of scanning one line.
type Decision struct {
	Keep bool
	Rule int // index of the rule that dropped the line, -1 when kept
}

// isBlockStart reports whether the raw line contains the rule's start marker.
func isBlockStart(rule m.BlockRule, raw string) bool {
	return strings.Contains(raw, rule.StartMarker)
}

// isBlockEnd reports whether the stripped line is exactly the end token.
func isBlockEnd(rules m.RuleSet, stripped string) bool {
	return stripped == rules.EndToken
}

// Step advances the scan by one line.
//
// Block transitions are evaluated first as one exclusive chain: the first rule
// whose start marker matches opens its block, otherwise the end token closes
// every block. The drop decision then runs against the updated state, rule by
// rule, and the first open block whose drop prefix matches removes the line.
func Step(rules m.RuleSet, state ScanState, raw string) (ScanState, Decision) {
	stripped := strings.TrimSpace(raw)

	state = transition(rules, state, raw, stripped)

	for i, rule := range rules.Rules {
		if state.Active(i) && strings.HasPrefix(stripped, rule.DropPrefix) {
			return state, Decision{Keep: false, Rule: i}
		}
	}

	return state, Decision{Keep: true, Rule: -1}
}

func transition(rules m.RuleSet, state ScanState, raw, stripped string) ScanState {
	for i, rule := range rules.Rules {
		if isBlockStart(rule, raw) {
			return state.open(i)
		}
	}

	if isBlockEnd(rules, stripped) {
		return NoBlock
	}

	return state
}

// FilterResult holds the lines kept by FilterLines and the ones it removed.
type FilterResult struct {
	Kept    []string
	Dropped []m.DroppedLine
}

// FilterLines folds Step over lines, top to bottom.
// Kept lines are returned unmodified and in their original order.
func FilterLines(rules m.RuleSet, lines []string) FilterResult {
	result := FilterResult{Kept: make([]string, 0, len(lines))}
	state := NoBlock

	for n, line := range lines {
		var decision Decision

		state, decision = Step(rules, state, line)
		if decision.Keep {
			result.Kept = append(result.Kept, line)
			continue
		}

		result.Dropped = append(result.Dropped, m.DroppedLine{
			Number: n + 1,
			Rule:   rules.Rules[decision.Rule].Name,
			Text:   strings.TrimRight(line, "\r\n"),
		})
	}

	return result
}
