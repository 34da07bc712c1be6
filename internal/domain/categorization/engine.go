// Package categorization assigns a spending category to a transaction
// description. Three signal layers are consulted with strict precedence:
// the learned merchant map, the static rule table, and an uncategorized
// fallback. The result carries provenance and a confidence score as an
// audit trail; downstream code never branches on them.
package categorization

import (
	"regexp"

	"github.com/cloudflare/ahocorasick"

	"github.com/kakeibo-dev/kakeibo/internal/domain/import/normalizer"
)

// Source records which layer produced a category.
type Source string

const (
	SourceLearned Source = "learned"
	SourceRule    Source = "rule"
	SourceUnknown Source = "unknown"
)

// Layer confidence is fixed per source, not computed.
const (
	confidenceLearned = 1.0
	confidenceRule    = 0.8
	confidenceUnknown = 0.0
)

// Result is the outcome of categorizing one description.
type Result struct {
	Category    string
	Source      Source
	Confidence  float64
	MerchantKey string // "" when the description has no retainable characters
}

// Rule is one entry of the ordered rule table: a category, its substring
// keywords, and optional narrower regexp patterns for structural matches.
type Rule struct {
	Category string
	Keywords []string
	Patterns []*regexp.Regexp
}

// Engine evaluates the rule table with a single Aho-Corasick pass over the
// keyword set, so matching cost is independent of table size. The table
// order is the precedence order: the first rule that matches wins.
type Engine struct {
	rules []Rule

	matcher     *ahocorasick.Matcher
	keywordRule []int // keyword pattern index -> rule index
}

// NewEngine builds an engine from an ordered rule table. Keywords are
// normalized with the same canonicalization applied to descriptions so that
// width and dash variants line up.
func NewEngine(rules []Rule) *Engine {
	e := &Engine{rules: rules}

	var patterns [][]byte
	for i, rule := range rules {
		for _, kw := range rule.Keywords {
			normalized := normalizer.NormalizeDescription(kw)
			if normalized == "" {
				continue
			}
			patterns = append(patterns, []byte(normalized))
			e.keywordRule = append(e.keywordRule, i)
		}
	}
	if len(patterns) > 0 {
		e.matcher = ahocorasick.NewMatcher(patterns)
	}

	return e
}

// DefaultEngine returns an engine loaded with the built-in rule table.
func DefaultEngine() *Engine {
	return NewEngine(defaultRules())
}

// Categorize resolves a category for the description. The learned map is
// supplied by the caller, keyed by merchant key, so the engine stays pure
// and testable without I/O. First match wins; layers are never blended.
func (e *Engine) Categorize(description string, learned map[string]string) Result {
	key := normalizer.MerchantKey(description)

	if key != "" {
		if category, ok := learned[key]; ok {
			return Result{
				Category:    category,
				Source:      SourceLearned,
				Confidence:  confidenceLearned,
				MerchantKey: key,
			}
		}
	}

	normalized := normalizer.NormalizeDescription(description)
	if idx, ok := e.matchRules(normalized); ok {
		return Result{
			Category:    e.rules[idx].Category,
			Source:      SourceRule,
			Confidence:  confidenceRule,
			MerchantKey: key,
		}
	}

	return Result{
		Category:    CategoryUncategorized,
		Source:      SourceUnknown,
		Confidence:  confidenceUnknown,
		MerchantKey: key,
	}
}

// matchRules returns the index of the first rule (in table order) whose
// keywords or patterns match the normalized description.
func (e *Engine) matchRules(normalized string) (int, bool) {
	if normalized == "" {
		return 0, false
	}

	best := len(e.rules)
	if e.matcher != nil {
		for _, patternIdx := range e.matcher.Match([]byte(normalized)) {
			if ruleIdx := e.keywordRule[patternIdx]; ruleIdx < best {
				best = ruleIdx
			}
		}
	}

	// Patterns can only improve on the keyword winner by matching an
	// earlier rule.
	for i := 0; i < best; i++ {
		for _, p := range e.rules[i].Patterns {
			if p.MatchString(normalized) {
				best = i
				break
			}
		}
		if best == i {
			break
		}
	}

	if best == len(e.rules) {
		return 0, false
	}
	return best, true
}
