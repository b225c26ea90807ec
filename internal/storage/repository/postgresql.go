// Package repository реализует хранилище данных на основе PostgreSQL
// для школьного учета. Предоставляет методы создания и чтения записей
// о пользователях, классах, учениках, форме и кассовой книге,
// а также выборку доходов и расходов за период.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrDuplicateKey возвращается при нарушении ограничения уникальности
// (имя пользователя, почта, название класса).
var ErrDuplicateKey = errors.New("duplicate key")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с сущностями школьного учета.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}

// mapDuplicateKey подменяет нарушение уникальности на ErrDuplicateKey,
// остальные ошибки возвращает как есть.
func mapDuplicateKey(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrDuplicateKey
	}
	return err
}
