package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases",
			input: "LAWSON Shibuya",
			want:  "lawson shibuya",
		},
		{
			name:  "folds fullwidth alphanumerics",
			input: "ＡＭＡＺＯＮ．ＣＯ．ＪＰ　１２３",
			want:  "amazon.co.jp 123",
		},
		{
			name:  "unifies dash variants",
			input: "セブン−イレブン",
			want:  "セブン-イレブン",
		},
		{
			name:  "collapses whitespace including ideographic space",
			input: "  visa　　debit  card ",
			want:  "visa debit card",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDescription(tt.input))
		})
	}
}

func TestMerchantKey_CollapsesBranchNumbers(t *testing.T) {
	k1 := MerchantKey("Store #3")
	k2 := MerchantKey("Store #7")
	assert.Equal(t, k1, k2)
	assert.Equal(t, "store", k1)
}

func TestMerchantKey_DistinctMerchantsStayDistinct(t *testing.T) {
	assert.NotEqual(t, MerchantKey("Store A"), MerchantKey("Store B"))
}

func TestMerchantKey_NoRetainableCharacters(t *testing.T) {
	assert.Equal(t, "", MerchantKey("12345"))
	assert.Equal(t, "", MerchantKey(""))
	assert.Equal(t, "", MerchantKey("#123-456!"))
}

func TestMerchantKey_StripsPOSNoise(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"receipt sequence", "ローソン 渋谷店 0012", "ローソン 渋谷店 9987"},
		{"fullwidth terminal id", "ファミリーマート　端末００１", "ファミリーマート 端末002"},
		{"symbols and digits", "AEON*1234", "AEON #99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, MerchantKey(tt.a), MerchantKey(tt.b))
		})
	}
}

func TestMerchantKey_Deterministic(t *testing.T) {
	in := "すき家 ３号店"
	assert.Equal(t, MerchantKey(in), MerchantKey(in))
}
