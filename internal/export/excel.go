package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/magabrotheeeer/school-management/internal/models"
)

// Excel строит xlsx-книгу отчета: лист доходов, лист расходов и лист итогов
// с тремя строками {Metric, Value}.
func Excel(bundle *models.ReportBundle) ([]byte, error) {
	const op = "export.Excel"

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", "Incomes"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := f.NewSheet("Expenses"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := f.NewSheet("Summary"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := writeRow(f, "Incomes", 1, "Date", "Amount", "Source"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i, in := range bundle.Incomes {
		if err := writeRow(f, "Incomes", i+2, in.Date.Format(dateLayout), in.Amount, in.Source); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := writeRow(f, "Expenses", 1, "Date", "Amount", "Category"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i, ex := range bundle.Expenses {
		if err := writeRow(f, "Expenses", i+2, ex.Date.Format(dateLayout), ex.Amount, ex.Category); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	summary := []struct {
		metric string
		value  float64
	}{
		{"Total Income", bundle.TotalIncome},
		{"Total Expenses", bundle.TotalExpense},
		{"Balance", bundle.Balance},
	}
	if err := writeRow(f, "Summary", 1, "Metric", "Value"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i, row := range summary {
		if err := writeRow(f, "Summary", i+2, row.metric, row.value); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}

// writeRow записывает значения в строку листа начиная с колонки A.
func writeRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
