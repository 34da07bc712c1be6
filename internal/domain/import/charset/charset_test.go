package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
)

func encodeShiftJIS(t *testing.T, s string) []byte {
	t.Helper()
	out, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return out
}

func TestDecode_UTF8PassThrough(t *testing.T) {
	in := "2024-01-15,1500,セブンイレブン 渋谷店"
	assert.Equal(t, in, Decode([]byte(in)))
}

func TestDecode_StripsBOM(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("date,amount,description")...)
	assert.Equal(t, "date,amount,description", Decode(in))
}

func TestDecode_ShiftJISRoundTrip(t *testing.T) {
	cases := []string{
		"ファミリーマート新宿三丁目店でのご利用",
		"スーパーマルエツ 店舗番号１２３",
		"東京メトロ 定期券購入 渋谷駅",
		"薬局くすりの福太郎 領収書",
	}
	for _, want := range cases {
		t.Run(want, func(t *testing.T) {
			got := Decode(encodeShiftJIS(t, want))
			assert.Equal(t, want, got)
		})
	}
}

func TestDecode_EUCJPRoundTrip(t *testing.T) {
	want := "株式会社日本カード御中 ご利用明細のお知らせ 毎度ありがとうございます " +
		"下記の通りご利用代金明細書を送付いたします 合計金額は一万二千三百円です"
	out, err := japanese.EUCJP.NewEncoder().Bytes([]byte(want))
	require.NoError(t, err)

	assert.Equal(t, want, Decode(out))
}

func TestDecode_NeverFails(t *testing.T) {
	// Garbage bytes still come back as some string.
	in := []byte{0xFE, 0xFE, 0xFF, 0x00, 0x81, 0xAD, 0xDE}
	out := Decode(in)
	assert.NotPanics(t, func() { _ = Decode(in) })
	assert.True(t, len(out) >= 0)
}

func TestDecode_Empty(t *testing.T) {
	assert.Equal(t, "", Decode(nil))
	assert.Equal(t, "", Decode([]byte{}))
}
