// Package export строит три взаимозаменяемых представления финансового
// отчета: табличное для экрана, xlsx-книгу и одностраничный pdf-документ.
// Все три — чистые функции от ReportBundle, повторных запросов к хранилищу
// не выполняется, поэтому представления одного отчета всегда согласованы.
package export

import (
	"fmt"
	"math"
	"strconv"

	"github.com/magabrotheeeer/school-management/internal/models"
)

// reportTitle заголовок отчета во всех представлениях.
const reportTitle = "School Financial Report"

// dateLayout формат календарных дат в отчетах.
const dateLayout = "2006-01-02"

// TableView табличное представление отчета для отображения на экране.
type TableView struct {
	Title         string     `json:"title"`
	Period        string     `json:"period"`
	IncomeHeader  []string   `json:"income_header"`
	IncomeRows    [][]string `json:"income_rows"`
	ExpenseHeader []string   `json:"expense_header"`
	ExpenseRows   [][]string `json:"expense_rows"`
	SummaryRows   [][]string `json:"summary_rows"`
}

// Table строит табличное представление отчета.
func Table(bundle *models.ReportBundle) TableView {
	view := TableView{
		Title:         reportTitle,
		Period:        fmt.Sprintf("Period: %s to %s", bundle.StartDate.Format(dateLayout), bundle.EndDate.Format(dateLayout)),
		IncomeHeader:  []string{"Date", "Amount", "Source"},
		ExpenseHeader: []string{"Date", "Amount", "Category"},
		SummaryRows:   summaryRows(bundle),
	}
	for _, in := range bundle.Incomes {
		view.IncomeRows = append(view.IncomeRows, []string{
			in.Date.Format(dateLayout), FormatAmount(in.Amount), in.Source,
		})
	}
	for _, ex := range bundle.Expenses {
		view.ExpenseRows = append(view.ExpenseRows, []string{
			ex.Date.Format(dateLayout), FormatAmount(ex.Amount), ex.Category,
		})
	}
	return view
}

// summaryRows возвращает ровно три строки итогов в фиксированном порядке.
func summaryRows(bundle *models.ReportBundle) [][]string {
	return [][]string{
		{"Total Income", FormatAmount(bundle.TotalIncome)},
		{"Total Expenses", FormatAmount(bundle.TotalExpense)},
		{"Balance", FormatAmount(bundle.Balance)},
	}
}

// FormatAmount форматирует сумму с разделителями тысяч и префиксом валюты:
// 500000 -> "USh 500,000".
func FormatAmount(v float64) string {
	neg := v < 0
	digits := strconv.FormatFloat(math.Abs(math.Round(v)), 'f', 0, 64)

	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, d)
	}
	if neg {
		return "USh -" + string(grouped)
	}
	return "USh " + string(grouped)
}
