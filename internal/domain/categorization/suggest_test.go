package categorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestCategories(t *testing.T) {
	known := []Mapping{
		{MerchantKey: "スタ-バックス", Category: CategoryFood},
		{MerchantKey: "starbucks coffee", Category: CategoryFood},
		{MerchantKey: "スポ-ツジム", Category: CategoryEntertainment},
	}

	suggestions := SuggestCategories("STARBUCKS COFFEE #1052", known)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "starbucks coffee", suggestions[0].MerchantKey)
	assert.Equal(t, CategoryFood, suggestions[0].Category)
}

func TestSuggestCategories_CapsAtFive(t *testing.T) {
	known := []Mapping{
		{MerchantKey: "cafe a", Category: CategoryFood},
		{MerchantKey: "cafe b", Category: CategoryFood},
		{MerchantKey: "cafe c", Category: CategoryFood},
		{MerchantKey: "cafe d", Category: CategoryFood},
		{MerchantKey: "cafe e", Category: CategoryFood},
		{MerchantKey: "cafe f", Category: CategoryFood},
		{MerchantKey: "cafe g", Category: CategoryFood},
	}

	suggestions := SuggestCategories("cafe", known)
	assert.LessOrEqual(t, len(suggestions), maxSuggestions)
}

func TestSuggestCategories_NoKeyNoSuggestions(t *testing.T) {
	known := []Mapping{{MerchantKey: "cafe", Category: CategoryFood}}

	assert.Nil(t, SuggestCategories("12345", known))
	assert.Nil(t, SuggestCategories("", known))
}

func TestSuggestCategories_NothingLearned(t *testing.T) {
	assert.Nil(t, SuggestCategories("starbucks", nil))
}
