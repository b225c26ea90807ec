package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/school-management/internal/models"
)

// CreateUser сохраняет нового пользователя в базу данных и возвращает его ID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO users (username, email, password_hash)
			  VALUES ($1, $2, $3)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapDuplicateKey(err))
	}
	return newID, nil
}

// EnsureAdminUser создает пользователя-администратора, если пользователя
// с таким именем еще нет. Повторный вызов не создает дубликат.
func (s *Storage) EnsureAdminUser(ctx context.Context, username, email, passwordHash string) error {
	const op = "storage.EnsureAdminUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (username, email, password_hash)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (username) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, username, email, passwordHash); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, email, password_hash, reset_code, reset_expiry
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, username)

	var resetCode sql.NullString
	var resetExpiry sql.NullTime
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&resetCode, &resetExpiry); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if resetCode.Valid {
		u.ResetCode = &resetCode.String
	}
	if resetExpiry.Valid {
		u.ResetExpiry = &resetExpiry.Time
	}
	return u, nil
}

// SetResetCode сохраняет код сброса пароля и срок его действия на строке пользователя.
func (s *Storage) SetResetCode(ctx context.Context, username, code string, expiry time.Time) error {
	const op = "storage.SetResetCode"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET reset_code = $1,
			      reset_expiry = $2
			  WHERE username = $3`
	result, err := s.DB.ExecContext(ctx, query, code, expiry, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, sql.ErrNoRows)
	}
	return nil
}

// UpdatePasswordAndClearReset одним запросом обновляет хэш пароля
// и очищает поля сброса. Срабатывает только если сохраненный код совпадает.
func (s *Storage) UpdatePasswordAndClearReset(ctx context.Context, username, code, passwordHash string) (int, error) {
	const op = "storage.UpdatePasswordAndClearReset"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_hash = $1,
			      reset_code = NULL,
			      reset_expiry = NULL
			  WHERE username = $2 AND reset_code = $3`
	result, err := s.DB.ExecContext(ctx, query, passwordHash, username, code)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
