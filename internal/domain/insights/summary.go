// Package insights computes reporting aggregates over already-ingested
// transactions. It performs no queries of its own; callers load the rows.
package insights

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kakeibo-dev/kakeibo/internal/domain/import/repository"
)

// CategoryTotal is one category's spending within a month.
type CategoryTotal struct {
	Category string
	Total    int64 // absolute yen spent
	Share    decimal.Decimal
}

// MonthlySummary is the classic kakeibo month view: income minus fixed
// costs and savings leaves the spendable budget, and variable expenses are
// broken down by category.
type MonthlySummary struct {
	Month      string
	Income     int64
	FixedCosts int64
	Savings    int64
	Spendable  int64
	Spent      int64
	Remaining  int64
	Categories []CategoryTotal
}

// Summarize aggregates one month of transactions. Only negative amounts
// count as spending; stored income rows are ignored in favor of the
// caller-declared monthly income.
func Summarize(month string, txs []*repository.Transaction, income, fixedCosts, savings int64) *MonthlySummary {
	totals := make(map[string]int64)
	var spent int64
	for _, tx := range txs {
		if tx.Amount >= 0 {
			continue
		}
		amount := -tx.Amount
		totals[tx.Category] += amount
		spent += amount
	}

	spendable := income - fixedCosts - savings

	categories := make([]CategoryTotal, 0, len(totals))
	spentDec := decimal.NewFromInt(spent)
	for category, total := range totals {
		share := decimal.Zero
		if spent > 0 {
			share = decimal.NewFromInt(total).
				Div(spentDec).
				Mul(decimal.NewFromInt(100)).
				Round(1)
		}
		categories = append(categories, CategoryTotal{
			Category: category,
			Total:    total,
			Share:    share,
		})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Total != categories[j].Total {
			return categories[i].Total > categories[j].Total
		}
		return categories[i].Category < categories[j].Category
	})

	return &MonthlySummary{
		Month:      month,
		Income:     income,
		FixedCosts: fixedCosts,
		Savings:    savings,
		Spendable:  spendable,
		Spent:      spent,
		Remaining:  spendable - spent,
		Categories: categories,
	}
}
