package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/magabrotheeeer/school-management/internal/models"
)

// PDF строит одностраничный печатный документ отчета с фиксированными
// текстовыми строками: заголовок, период и три итога.
func PDF(bundle *models.ReportBundle) ([]byte, error) {
	const op = "export.PDF"

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, reportTitle)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range DocumentLines(bundle) {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}

// DocumentLines возвращает строки печатного документа после заголовка
// в фиксированном порядке.
func DocumentLines(bundle *models.ReportBundle) []string {
	return []string{
		fmt.Sprintf("Period: %s to %s", bundle.StartDate.Format(dateLayout), bundle.EndDate.Format(dateLayout)),
		fmt.Sprintf("Total Income: %s", FormatAmount(bundle.TotalIncome)),
		fmt.Sprintf("Total Expenses: %s", FormatAmount(bundle.TotalExpense)),
		fmt.Sprintf("Balance: %s", FormatAmount(bundle.Balance)),
	}
}
