package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/school-management/internal/models"
)

// CreateIncome вставляет новую запись о доходе и возвращает ее ID.
func (s *Storage) CreateIncome(ctx context.Context, income models.Income) (int, error) {
	const op = "storage.CreateIncome"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO incomes (date, amount, source)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query,
		income.Date, income.Amount, income.Source).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// CreateExpense вставляет новую запись о расходе и возвращает ее ID.
func (s *Storage) CreateExpense(ctx context.Context, expense models.Expense) (int, error) {
	const op = "storage.CreateExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO expenses (date, amount, category)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query,
		expense.Date, expense.Amount, expense.Category).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListIncomesByRange возвращает доходы за период, границы включительно,
// упорядоченные по дате.
func (s *Storage) ListIncomesByRange(ctx context.Context, start, end time.Time) ([]models.Income, error) {
	const op = "storage.ListIncomesByRange"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, date, amount, source
			  FROM incomes
			  WHERE date BETWEEN $1 AND $2
			  ORDER BY date, id`
	rows, err := s.DB.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []models.Income
	for rows.Next() {
		var in models.Income
		if err = rows.Scan(&in.ID, &in.Date, &in.Amount, &in.Source); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, in)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListExpensesByRange возвращает расходы за период, границы включительно,
// упорядоченные по дате.
func (s *Storage) ListExpensesByRange(ctx context.Context, start, end time.Time) ([]models.Expense, error) {
	const op = "storage.ListExpensesByRange"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, date, amount, category
			  FROM expenses
			  WHERE date BETWEEN $1 AND $2
			  ORDER BY date, id`
	rows, err := s.DB.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []models.Expense
	for rows.Next() {
		var ex models.Expense
		if err = rows.Scan(&ex.ID, &ex.Date, &ex.Amount, &ex.Category); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, ex)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
