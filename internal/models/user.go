// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и поля сброса пароля.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет учетную запись администратора системы.
type User struct {
	ID           int        // Уникальный идентификатор пользователя
	Username     string     // Имя пользователя (уникальное)
	Email        string     // Электронная почта (уникальная)
	PasswordHash string     // Хэш пароля пользователя
	ResetCode    *string    // Код сброса пароля, nil если сброс не запрошен
	ResetExpiry  *time.Time // Срок действия кода сброса, nil если сброс не запрошен
}
