package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/school-management/internal/models"
)

// CreateUniform вставляет новую позицию школьной формы и возвращает ее ID.
func (s *Storage) CreateUniform(ctx context.Context, uniform models.Uniform) (int, error) {
	const op = "storage.CreateUniform"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO uniforms (type, size, stock, unit_cost)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query,
		uniform.Type, uniform.Size, uniform.Stock, uniform.UnitCost).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListUniforms возвращает все позиции формы, упорядоченные по типу и размеру.
func (s *Storage) ListUniforms(ctx context.Context) ([]*models.Uniform, error) {
	const op = "storage.ListUniforms"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, type, size, stock, unit_cost
			  FROM uniforms
			  ORDER BY type, size`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Uniform
	for rows.Next() {
		var u models.Uniform
		if err = rows.Scan(&u.ID, &u.Type, &u.Size, &u.Stock, &u.UnitCost); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
