// Package services содержит логику бизнес-уровня для аутентификации
// и восстановления пароля единственной учетной записи системы.
package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/school-management/internal/lib/password"
	"github.com/magabrotheeeer/school-management/internal/models"
)

// Ошибки уровня аутентификации. Все восстановимые: сообщаются вызывающему
// как отклоненная операция, процесс продолжает работу.
var (
	// ErrInvalidCredentials неверное имя пользователя или пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound пользователь с таким именем не зарегистрирован.
	ErrUserNotFound = errors.New("user not found")
	// ErrPasswordMismatch новый пароль и его подтверждение не совпадают.
	ErrPasswordMismatch = errors.New("password mismatch")
	// ErrInvalidOrExpiredCode код сброса не совпадает или просрочен.
	ErrInvalidOrExpiredCode = errors.New("invalid or expired reset code")
	// ErrNotificationFailed письмо с кодом не доставлено; сам код при этом
	// сохранен и действителен до истечения срока.
	ErrNotificationFailed = errors.New("failed to deliver reset code")
)

// resetCodeTTL срок действия кода сброса пароля.
const resetCodeTTL = 30 * time.Minute

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// SetResetCode сохраняет код сброса и срок его действия.
	SetResetCode(ctx context.Context, username, code string, expiry time.Time) error

	// UpdatePasswordAndClearReset атомарно обновляет пароль и очищает поля сброса,
	// возвращает количество обновленных строк.
	UpdatePasswordAndClearReset(ctx context.Context, username, code, passwordHash string) (int, error)
}

// SessionStore описывает реестр активных сессий.
type SessionStore interface {
	Create(username string) string
	Get(token string) (string, bool)
	Delete(token string)
}

// Mailer описывает шлюз уведомлений для доставки кода сброса.
type Mailer interface {
	SendResetCode(email, username, code string, expiry time.Time) error
}

// AuthService отвечает за вход, выход и восстановление пароля.
type AuthService struct {
	users    UserRepository
	sessions SessionStore
	mailer   Mailer
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sessions SessionStore, mailer Mailer) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		mailer:   mailer,
	}
}

// Login проверяет пароль пользователя и регистрирует сессию.
// Возвращает непрозрачный токен сессии. Строка пользователя не изменяется.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.sessions.Create(user.Username), nil
}

// Logout завершает сессию по токену.
func (s *AuthService) Logout(token string) {
	s.sessions.Delete(token)
}

// Validate возвращает имя пользователя активной сессии.
func (s *AuthService) Validate(token string) (string, bool) {
	return s.sessions.Get(token)
}

// RequestReset генерирует код сброса пароля, сохраняет его на строке
// пользователя и отправляет на зарегистрированную почту.
//
// Если доставка не удалась, возвращается ErrNotificationFailed, но
// сохраненный код остается действительным: запрос идемпотентен и его можно
// повторить либо доставить код другим способом.
func (s *AuthService) RequestReset(ctx context.Context, username string) (time.Time, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrUserNotFound
		}
		return time.Time{}, err
	}

	code, err := generateResetCode()
	if err != nil {
		return time.Time{}, err
	}
	expiry := time.Now().UTC().Add(resetCodeTTL)

	if err := s.users.SetResetCode(ctx, user.Username, code, expiry); err != nil {
		return time.Time{}, err
	}

	if err := s.mailer.SendResetCode(user.Email, user.Username, code, expiry); err != nil {
		// код уже сохранен, откат не выполняется
		return expiry, fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}
	return expiry, nil
}

// ConfirmReset меняет пароль по коду сброса.
//
// Сначала проверяется совпадение нового пароля с подтверждением, затем код
// и срок его действия. Успех атомарно обновляет пароль и очищает поля сброса,
// неуспех не меняет состояние.
func (s *AuthService) ConfirmReset(ctx context.Context, username, code, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidOrExpiredCode
		}
		return err
	}
	if user.ResetCode == nil || user.ResetExpiry == nil {
		return ErrInvalidOrExpiredCode
	}
	if *user.ResetCode != code || !time.Now().UTC().Before(user.ResetExpiry.UTC()) {
		return ErrInvalidOrExpiredCode
	}

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	updated, err := s.users.UpdatePasswordAndClearReset(ctx, user.Username, code, hashed)
	if err != nil {
		return err
	}
	if updated == 0 {
		return ErrInvalidOrExpiredCode
	}
	return nil
}

// generateResetCode возвращает 8 hex-символов из криптографического
// источника случайности.
func generateResetCode() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth.generateResetCode: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
