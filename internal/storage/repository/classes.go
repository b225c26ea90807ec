package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/school-management/internal/models"
)

// CreateClass вставляет новый класс и возвращает его ID.
// Повторное название класса приводит к ErrDuplicateKey.
func (s *Storage) CreateClass(ctx context.Context, class models.Class) (int, error) {
	const op = "storage.CreateClass"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO classes (name)
			  VALUES ($1)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query, class.Name).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapDuplicateKey(err))
	}
	return newID, nil
}

// ListClasses возвращает все классы, упорядоченные по названию.
func (s *Storage) ListClasses(ctx context.Context) ([]*models.Class, error) {
	const op = "storage.ListClasses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name
			  FROM classes
			  ORDER BY name`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Class
	for rows.Next() {
		var c models.Class
		if err = rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
