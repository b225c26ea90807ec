package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/school-management/internal/models"
)

// CreateStudent вставляет нового ученика и возвращает его ID.
func (s *Storage) CreateStudent(ctx context.Context, student models.Student) (int, error) {
	const op = "storage.CreateStudent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO students (name, age, enrollment_date, class_id)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	var classID sql.NullInt64
	if student.ClassID != nil {
		classID = sql.NullInt64{Int64: int64(*student.ClassID), Valid: true}
	}
	if err := s.DB.QueryRowContext(ctx, query,
		student.Name, student.Age, student.EnrollmentDate, classID).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListStudents возвращает всех учеников, упорядоченных по имени.
func (s *Storage) ListStudents(ctx context.Context) ([]*models.Student, error) {
	const op = "storage.ListStudents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, age, enrollment_date, class_id
			  FROM students
			  ORDER BY name`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Student
	for rows.Next() {
		var st models.Student
		var classID sql.NullInt64
		if err = rows.Scan(&st.ID, &st.Name, &st.Age, &st.EnrollmentDate, &classID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if classID.Valid {
			id := int(classID.Int64)
			st.ClassID = &id
		}
		result = append(result, &st)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
