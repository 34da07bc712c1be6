package categorization

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/kakeibo-dev/kakeibo/internal/domain/import/normalizer"
)

// Suggestion is an advisory category candidate for the manual-correction
// flow. Suggestions are never consulted by Categorize; the deterministic
// precedence there is the contract, this is UI sugar.
type Suggestion struct {
	Category    string
	MerchantKey string
	Rank        int // lower is closer
}

const maxSuggestions = 5

// SuggestCategories fuzzy-matches a description's merchant key against
// already-learned keys and returns up to five candidates, closest first.
func SuggestCategories(description string, known []Mapping) []Suggestion {
	key := normalizer.MerchantKey(description)
	if key == "" || len(known) == 0 {
		return nil
	}

	keys := make([]string, len(known))
	byKey := make(map[string]Mapping, len(known))
	for i, m := range known {
		keys[i] = m.MerchantKey
		byKey[m.MerchantKey] = m
	}

	ranks := fuzzy.RankFindFold(key, keys)
	sort.Sort(ranks)

	var suggestions []Suggestion
	for _, r := range ranks {
		m := byKey[r.Target]
		suggestions = append(suggestions, Suggestion{
			Category:    m.Category,
			MerchantKey: m.MerchantKey,
			Rank:        r.Distance,
		})
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}
