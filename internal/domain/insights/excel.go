package insights

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kakeibo-dev/kakeibo/pkg/money"
)

const sheetName = "Monthly Summary"

// WriteExcel renders a monthly summary as a two-section spreadsheet: the
// budget headline followed by the per-category breakdown.
func WriteExcel(w io.Writer, summary *MonthlySummary) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	headline := [][]any{
		{"Month", summary.Month},
		{"Income", money.Yen(summary.Income).Display()},
		{"Fixed costs", money.Yen(summary.FixedCosts).Display()},
		{"Savings", money.Yen(summary.Savings).Display()},
		{"Spendable", money.Yen(summary.Spendable).Display()},
		{"Spent", money.Yen(summary.Spent).Display()},
		{"Remaining", money.Yen(summary.Remaining).Display()},
	}
	for i, row := range headline {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write headline row: %w", err)
		}
	}

	tableTop := len(headline) + 2
	header := []any{"Category", "Total", "Share %"}
	cell, _ := excelize.CoordinatesToCellName(1, tableTop)
	if err := f.SetSheetRow(sheetName, cell, &header); err != nil {
		return fmt.Errorf("write category header: %w", err)
	}

	for i, ct := range summary.Categories {
		row := []any{ct.Category, money.Yen(ct.Total).Display(), ct.Share.String()}
		cell, _ := excelize.CoordinatesToCellName(1, tableTop+1+i)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write category row: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
