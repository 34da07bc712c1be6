package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notification = `カード利用のお知らせ

いつもご利用ありがとうございます。
以下の通りカードのご利用がありました。

利用日：2025/04/12
利用先：ローソン 渋谷店
利用金額：1,280円

ご利用明細はウェブサイトでご確認ください。
`

func TestExtract(t *testing.T) {
	candidate, err := Extract(notification)
	require.NoError(t, err)
	assert.Equal(t, "2025-04-12", candidate.Date)
	assert.Equal(t, int64(1280), candidate.Amount)
	assert.Equal(t, "ローソン 渋谷店", candidate.Description)
}

func TestExtract_AsciiColons(t *testing.T) {
	body := "利用日: 2025/01/03\n利用先: AMAZON.CO.JP\n利用金額: 4,980円\n"

	candidate, err := Extract(body)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-03", candidate.Date)
	assert.Equal(t, int64(4980), candidate.Amount)
	assert.Equal(t, "AMAZON.CO.JP", candidate.Description)
}

func TestExtract_UngroupedAmount(t *testing.T) {
	body := "利用日：2025/02/10\n利用先：ドトール\n利用金額：480円\n"

	candidate, err := Extract(body)
	require.NoError(t, err)
	assert.Equal(t, int64(480), candidate.Amount)
}

func TestExtract_NotANotification(t *testing.T) {
	tests := map[string]string{
		"newsletter":     "今週のお得なキャンペーンのご案内です。",
		"missing amount": "利用日：2025/04/12\n利用先：ローソン\n",
		"missing date":   "利用先：ローソン\n利用金額：1,280円\n",
		"empty":          "",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Extract(body)
			assert.ErrorIs(t, err, ErrNotRecognized)
		})
	}
}
