package categorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kakeibo-dev/kakeibo/internal/domain/import/normalizer"
)

func TestCategorize_LearnedLayerWinsOverRules(t *testing.T) {
	engine := DefaultEngine()

	// "ローソン 渋谷店" would hit the Food rule, but a learned mapping for
	// its merchant key must take precedence.
	desc := "ローソン 渋谷店 0031"
	key := normalizer.MerchantKey(desc)
	require.NotEmpty(t, key)

	learned := map[string]string{key: CategoryDailyGoods}

	result := engine.Categorize(desc, learned)
	assert.Equal(t, CategoryDailyGoods, result.Category)
	assert.Equal(t, SourceLearned, result.Source)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, key, result.MerchantKey)
}

func TestCategorize_RuleLayer(t *testing.T) {
	engine := DefaultEngine()

	tests := []struct {
		desc string
		want string
	}{
		{"セブン−イレブン 新宿西口店", CategoryFood},
		{"ファミリーマート 渋谷3丁目", CategoryFood},
		{"ＮＥＴＦＬＩＸ．ＣＯＭ", CategorySubscription},
		{"JR東日本 モバイルSuica", CategoryTransport},
		{"マツモトキヨシ 池袋東口", CategoryDailyGoods},
		{"渋谷中央クリニック", CategoryMedical},
		{"TOHOシネマズ 六本木", CategoryEntertainment},
		{"コンビニATM手数料", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := engine.Categorize(tt.desc, nil)
			assert.Equal(t, tt.want, result.Category)
			assert.Equal(t, SourceRule, result.Source)
			assert.Equal(t, 0.8, result.Confidence)
		})
	}
}

func TestCategorize_TableOrderBreaksTies(t *testing.T) {
	engine := DefaultEngine()

	// Matches both Subscriptions ("netflix") and Entertainment ("ゲーム");
	// the earlier rule must win.
	result := engine.Categorize("NETFLIX ゲーム特集", nil)
	assert.Equal(t, CategorySubscription, result.Category)
}

func TestCategorize_FallbackIsExplicitlyUnknown(t *testing.T) {
	engine := DefaultEngine()

	result := engine.Categorize("未知の店舗", nil)
	assert.Equal(t, CategoryUncategorized, result.Category)
	assert.Equal(t, SourceUnknown, result.Source)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestCategorize_DepartmentStoresAreNeverGuessed(t *testing.T) {
	engine := DefaultEngine()

	for _, desc := range []string{"伊勢丹 新宿店", "高島屋 日本橋", "三越 銀座店"} {
		result := engine.Categorize(desc, nil)
		assert.Equal(t, CategoryUncategorized, result.Category, desc)
		assert.Equal(t, SourceUnknown, result.Source)
	}
}

func TestCategorize_DigitsOnlyDescriptionHasNoKey(t *testing.T) {
	engine := DefaultEngine()

	result := engine.Categorize("12345", map[string]string{"": CategoryFood})
	assert.Empty(t, result.MerchantKey)
	// An empty key must not hit the learned map.
	assert.Equal(t, SourceUnknown, result.Source)
}

func TestCategorize_PatternLayer(t *testing.T) {
	engine := DefaultEngine()

	// "キッチン" is not in the keyword set; only the `(キッチン|kitchen)$`
	// pattern can claim it.
	result := engine.Categorize("さくらキッチン", nil)
	assert.Equal(t, CategoryFood, result.Category)
	assert.Equal(t, SourceRule, result.Source)
}

func TestCategorize_WidthVariantsMatchSameRule(t *testing.T) {
	engine := DefaultEngine()

	half := engine.Categorize("NETFLIX.COM", nil)
	full := engine.Categorize("ＮＥＴＦＬＩＸ．ＣＯＭ", nil)
	assert.Equal(t, half.Category, full.Category)
	assert.Equal(t, CategorySubscription, half.Category)
}

func TestCategorize_EmptyDescription(t *testing.T) {
	engine := DefaultEngine()

	result := engine.Categorize("", nil)
	assert.Equal(t, CategoryUncategorized, result.Category)
	assert.Empty(t, result.MerchantKey)
}

func TestNewEngine_EmptyTable(t *testing.T) {
	engine := NewEngine(nil)

	result := engine.Categorize("ローソン", nil)
	assert.Equal(t, CategoryUncategorized, result.Category)
}
