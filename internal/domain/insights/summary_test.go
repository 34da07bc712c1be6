package insights

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kakeibo-dev/kakeibo/internal/domain/categorization"
	"github.com/kakeibo-dev/kakeibo/internal/domain/import/repository"
)

func aprilTransactions() []*repository.Transaction {
	return []*repository.Transaction{
		{Date: "2025-04-01", Amount: -1280, Category: categorization.CategoryFood},
		{Date: "2025-04-02", Amount: -2720, Category: categorization.CategoryFood},
		{Date: "2025-04-03", Amount: -6000, Category: categorization.CategoryTransport},
		{Date: "2025-04-25", Amount: 280000, Category: categorization.CategoryUncategorized},
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize("2025-04", aprilTransactions(), 280000, 90000, 30000)

	assert.Equal(t, int64(160000), summary.Spendable)
	assert.Equal(t, int64(10000), summary.Spent)
	assert.Equal(t, int64(150000), summary.Remaining)

	require.Len(t, summary.Categories, 2)
	assert.Equal(t, categorization.CategoryTransport, summary.Categories[0].Category)
	assert.Equal(t, int64(6000), summary.Categories[0].Total)
	assert.Equal(t, "60", summary.Categories[0].Share.String())
	assert.Equal(t, categorization.CategoryFood, summary.Categories[1].Category)
	assert.Equal(t, "40", summary.Categories[1].Share.String())
}

func TestSummarize_IncomeRowsDoNotCountAsSpending(t *testing.T) {
	summary := Summarize("2025-04", aprilTransactions(), 280000, 0, 0)
	assert.Equal(t, int64(10000), summary.Spent)
}

func TestSummarize_NoTransactions(t *testing.T) {
	summary := Summarize("2025-04", nil, 280000, 90000, 30000)

	assert.Equal(t, int64(0), summary.Spent)
	assert.Equal(t, int64(160000), summary.Remaining)
	assert.Empty(t, summary.Categories)
}

func TestSummarize_OverBudget(t *testing.T) {
	txs := []*repository.Transaction{
		{Amount: -200000, Category: categorization.CategoryOther},
	}
	summary := Summarize("2025-04", txs, 280000, 90000, 30000)
	assert.Equal(t, int64(-40000), summary.Remaining)
}

func TestWriteExcel(t *testing.T) {
	summary := Summarize("2025-04", aprilTransactions(), 280000, 90000, 30000)

	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, summary))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	month, err := f.GetCellValue(sheetName, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2025-04", month)

	remaining, err := f.GetCellValue(sheetName, "B7")
	require.NoError(t, err)
	assert.Equal(t, "¥150,000", remaining)

	topCategory, err := f.GetCellValue(sheetName, "A10")
	require.NoError(t, err)
	assert.Equal(t, categorization.CategoryTransport, topCategory)
}
