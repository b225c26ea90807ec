// Package services содержит бизнес-логику формирования финансового отчета:
// выборку доходов и расходов за период и подсчет итогов.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/school-management/internal/models"
)

// FinanceRepository определяет методы выборки кассовой книги из хранилища.
type FinanceRepository interface {
	// ListIncomesByRange возвращает доходы за период, границы включительно.
	ListIncomesByRange(ctx context.Context, start, end time.Time) ([]models.Income, error)
	// ListExpensesByRange возвращает расходы за период, границы включительно.
	ListExpensesByRange(ctx context.Context, start, end time.Time) ([]models.Expense, error)
}

// ReportService формирует агрегированный отчет за период.
// Обращается к хранилищу только на чтение.
type ReportService struct {
	repo FinanceRepository
	log  *slog.Logger
}

// NewReportService создает новый экземпляр ReportService.
func NewReportService(repo FinanceRepository, log *slog.Logger) *ReportService {
	return &ReportService{
		repo: repo,
		log:  log,
	}
}

// Generate выбирает доходы и расходы за период [start, end] и считает итоги.
// Все дальнейшие представления отчета строятся из возвращенного ReportBundle,
// повторных обращений к хранилищу не происходит.
func (s *ReportService) Generate(ctx context.Context, start, end time.Time) (*models.ReportBundle, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("report period end %s is before start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	incomes, err := s.repo.ListIncomesByRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	expenses, err := s.repo.ListExpensesByRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	bundle := &models.ReportBundle{
		StartDate: start,
		EndDate:   end,
		Incomes:   incomes,
		Expenses:  expenses,
	}
	for _, in := range incomes {
		bundle.TotalIncome += in.Amount
	}
	for _, ex := range expenses {
		bundle.TotalExpense += ex.Amount
	}
	bundle.Balance = bundle.TotalIncome - bundle.TotalExpense

	s.log.Info("report generated",
		slog.String("start", start.Format("2006-01-02")),
		slog.String("end", end.Format("2006-01-02")),
		slog.Int("incomes", len(incomes)),
		slog.Int("expenses", len(expenses)))
	return bundle, nil
}
