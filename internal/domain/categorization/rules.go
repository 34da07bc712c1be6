package categorization

import "regexp"

// Category names are stored verbatim on transactions.
const (
	CategoryFood          = "Food"
	CategoryTransport     = "Transport"
	CategoryDailyGoods    = "Daily Necessities"
	CategorySubscription  = "Subscriptions"
	CategoryMedical       = "Medical"
	CategoryEntertainment = "Entertainment"
	CategoryOther         = "Other"

	// CategoryUncategorized is the fallback sentinel, never part of the
	// rule table.
	CategoryUncategorized = "Uncategorized"
)

// defaultRules is the built-in ordered rule table. Earlier rules win, so
// narrow categories (subscriptions) sit above broad ones (entertainment).
//
// General department stores (伊勢丹, 高島屋, 三越, マルイ) are deliberately
// absent from every rule: their purchases span too many categories, and an
// unmatched description falls through to Uncategorized instead of a guess.
func defaultRules() []Rule {
	return []Rule{
		{
			Category: CategorySubscription,
			Keywords: []string{
				"netflix", "spotify", "hulu", "youtube premium", "u-next",
				"amazon prime", "アマゾンプライム", "kindle unlimited",
				"apple.com/bill", "icloud", "adobe", "dアニメ",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`月額(利用)?料`),
				regexp.MustCompile(`定額サ-ビス$`),
			},
		},
		{
			Category: CategoryFood,
			Keywords: []string{
				"セブン-イレブン", "セブンイレブン", "ローソン", "ファミリーマート",
				"ミニストップ", "デイリーヤマザキ",
				"マクドナルド", "モスバーガー", "ケンタッキー", "すき家", "吉野家",
				"松屋", "サイゼリヤ", "ガスト", "ココイチ", "スターバックス",
				"ドトール", "タリーズ",
				"スーパー", "マルエツ", "ライフ", "サミット", "業務スーパー",
				"成城石井", "オーケー",
				"食堂", "レストラン", "カフェ", "居酒屋", "ラーメン", "うどん",
				"そば", "寿司", "弁当", "ベーカリー", "パン",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`食堂$`),
				regexp.MustCompile(`(キッチン|kitchen)$`),
			},
		},
		{
			Category: CategoryTransport,
			Keywords: []string{
				"鉄道", "メトロ", "地下鉄", "新幹線", "モノレール", "バス",
				"タクシー", "suica", "pasmo", "icoca", "定期券",
				"エネオス", "出光", "コスモ石油", "ガソリン",
				"駐車場", "パーキング", "高速道路", "レンタカー",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`\bjr\b`),
				regexp.MustCompile(`\betc\b`),
			},
		},
		{
			Category: CategoryDailyGoods,
			Keywords: []string{
				"マツモトキヨシ", "ウエルシア", "ツルハ", "サンドラッグ",
				"ドラッグ", "コクミン",
				"ダイソー", "セリア", "キャンドゥ", "100均",
				"ニトリ", "カインズ", "コーナン", "ホームセンター",
				"無印良品", "ドンキ", "洗剤", "ティッシュ",
			},
		},
		{
			Category: CategoryMedical,
			Keywords: []string{
				"病院", "クリニック", "医院", "診療所", "薬局", "調剤",
				"歯科", "内科", "外科", "眼科", "皮膚科", "整骨院", "接骨院",
			},
		},
		{
			Category: CategoryEntertainment,
			Keywords: []string{
				"映画", "シネマ", "カラオケ", "ボウリング", "劇場", "美術館",
				"水族館", "遊園地", "チケット",
				"steam", "playstation", "nintendo", "ゲーム",
				"書店", "ブックオフ", "tsutaya",
			},
		},
		{
			Category: CategoryOther,
			Keywords: []string{
				"atm", "手数料", "振込", "引落", "年会費", "リボ",
			},
		},
	}
}
