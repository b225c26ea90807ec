package services

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/school-management/internal/lib/password"
	"github.com/magabrotheeeer/school-management/internal/lib/session"
	"github.com/magabrotheeeer/school-management/internal/models"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepositoryMock) SetResetCode(ctx context.Context, username, code string, expiry time.Time) error {
	args := m.Called(ctx, username, code, expiry)
	return args.Error(0)
}

func (m *UserRepositoryMock) UpdatePasswordAndClearReset(ctx context.Context, username, code, passwordHash string) (int, error) {
	args := m.Called(ctx, username, code, passwordHash)
	return args.Int(0), args.Error(1)
}

type MailerMock struct {
	mock.Mock
}

func (m *MailerMock) SendResetCode(email, username, code string, expiry time.Time) error {
	args := m.Called(email, username, code, expiry)
	return args.Error(0)
}

func adminUser(t *testing.T, rawPassword string) *models.User {
	t.Helper()
	hash, err := password.GetHash(rawPassword)
	require.NoError(t, err)
	return &models.User{
		ID:           1,
		Username:     "admin",
		Email:        "admin@school.local",
		PasswordHash: hash,
	}
}

func notFound() error {
	return fmt.Errorf("storage.GetUserByUsername: %w", sql.ErrNoRows)
}

func TestLogin(t *testing.T) {
	user := adminUser(t, "costa2026")

	tests := []struct {
		name     string
		username string
		password string
		repoUser *models.User
		repoErr  error
		wantErr  error
	}{
		{
			name:     "valid credentials",
			username: "admin",
			password: "costa2026",
			repoUser: user,
		},
		{
			name:     "wrong password",
			username: "admin",
			password: "costa2025",
			repoUser: user,
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "costa2026",
			repoErr:  notFound(),
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepositoryMock)
			repo.On("GetUserByUsername", mock.Anything, tt.username).
				Return(tt.repoUser, tt.repoErr).Once()

			sessions := session.NewStore()
			svc := NewAuthService(repo, sessions, new(MailerMock))

			token, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, token)

			username, ok := svc.Validate(token)
			assert.True(t, ok)
			assert.Equal(t, "admin", username)

			// вход не изменяет строку пользователя
			repo.AssertNotCalled(t, "SetResetCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			repo.AssertNotCalled(t, "UpdatePasswordAndClearReset", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestLogout_EndsSession(t *testing.T) {
	user := adminUser(t, "costa2026")
	repo := new(UserRepositoryMock)
	repo.On("GetUserByUsername", mock.Anything, "admin").Return(user, nil).Once()

	svc := NewAuthService(repo, session.NewStore(), new(MailerMock))

	token, err := svc.Login(context.Background(), "admin", "costa2026")
	require.NoError(t, err)

	svc.Logout(token)
	_, ok := svc.Validate(token)
	assert.False(t, ok)
}

func TestRequestReset_Success(t *testing.T) {
	user := adminUser(t, "costa2026")
	repo := new(UserRepositoryMock)
	mailer := new(MailerMock)

	var storedCode string
	var storedExpiry time.Time
	repo.On("GetUserByUsername", mock.Anything, "admin").Return(user, nil).Once()
	repo.On("SetResetCode", mock.Anything, "admin", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			storedCode = args.String(2)
			storedExpiry = args.Get(3).(time.Time)
		}).Return(nil).Once()
	mailer.On("SendResetCode", "admin@school.local", "admin", mock.Anything, mock.Anything).
		Return(nil).Once()

	svc := NewAuthService(repo, session.NewStore(), mailer)

	expiry, err := svc.RequestReset(context.Background(), "admin")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{8}$`), storedCode)
	assert.Equal(t, storedExpiry, expiry)
	assert.WithinDuration(t, time.Now().UTC().Add(30*time.Minute), expiry, time.Minute)
	mailer.AssertExpectations(t)
}

func TestRequestReset_UserNotFound(t *testing.T) {
	repo := new(UserRepositoryMock)
	repo.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, notFound()).Once()

	svc := NewAuthService(repo, session.NewStore(), new(MailerMock))

	_, err := svc.RequestReset(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
	repo.AssertNotCalled(t, "SetResetCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestReset_NotificationFailed_KeepsCode(t *testing.T) {
	user := adminUser(t, "costa2026")
	repo := new(UserRepositoryMock)
	mailer := new(MailerMock)

	repo.On("GetUserByUsername", mock.Anything, "admin").Return(user, nil).Once()
	repo.On("SetResetCode", mock.Anything, "admin", mock.Anything, mock.Anything).Return(nil).Once()
	mailer.On("SendResetCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(fmt.Errorf("smtp: connection refused")).Once()

	svc := NewAuthService(repo, session.NewStore(), mailer)

	_, err := svc.RequestReset(context.Background(), "admin")
	assert.ErrorIs(t, err, ErrNotificationFailed)

	// код сохранен до попытки доставки и не откатывается
	repo.AssertCalled(t, "SetResetCode", mock.Anything, "admin", mock.Anything, mock.Anything)
}

func TestConfirmReset(t *testing.T) {
	code := "a1b2c3d4"
	future := time.Now().UTC().Add(10 * time.Minute)
	past := time.Now().UTC().Add(-time.Minute)

	userWithReset := func(code string, expiry time.Time) *models.User {
		u := adminUser(t, "costa2026")
		u.ResetCode = &code
		u.ResetExpiry = &expiry
		return u
	}

	tests := []struct {
		name        string
		newPassword string
		confirm     string
		code        string
		repoUser    *models.User
		repoErr     error
		updatedRows int
		wantErr     error
		wantUpdate  bool
	}{
		{
			name:        "success",
			newPassword: "newpass123",
			confirm:     "newpass123",
			code:        code,
			repoUser:    userWithReset(code, future),
			updatedRows: 1,
			wantUpdate:  true,
		},
		{
			name:        "password mismatch",
			newPassword: "newpass123",
			confirm:     "other",
			code:        code,
			wantErr:     ErrPasswordMismatch,
		},
		{
			name:        "expired code",
			newPassword: "newpass123",
			confirm:     "newpass123",
			code:        code,
			repoUser:    userWithReset(code, past),
			wantErr:     ErrInvalidOrExpiredCode,
		},
		{
			name:        "wrong code",
			newPassword: "newpass123",
			confirm:     "newpass123",
			code:        "ffffffff",
			repoUser:    userWithReset(code, future),
			wantErr:     ErrInvalidOrExpiredCode,
		},
		{
			name:        "no reset requested",
			newPassword: "newpass123",
			confirm:     "newpass123",
			code:        code,
			repoUser:    adminUser(t, "costa2026"),
			wantErr:     ErrInvalidOrExpiredCode,
		},
		{
			name:        "unknown user",
			newPassword: "newpass123",
			confirm:     "newpass123",
			code:        code,
			repoErr:     notFound(),
			wantErr:     ErrInvalidOrExpiredCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepositoryMock)
			if tt.repoUser != nil || tt.repoErr != nil {
				repo.On("GetUserByUsername", mock.Anything, "admin").
					Return(tt.repoUser, tt.repoErr).Once()
			}
			if tt.wantUpdate {
				repo.On("UpdatePasswordAndClearReset", mock.Anything, "admin", tt.code, mock.Anything).
					Return(tt.updatedRows, nil).Once()
			}

			svc := NewAuthService(repo, session.NewStore(), new(MailerMock))

			err := svc.ConfirmReset(context.Background(), "admin", tt.code, tt.newPassword, tt.confirm)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				// неуспех не меняет состояние
				repo.AssertNotCalled(t, "UpdatePasswordAndClearReset", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestConfirmReset_RaceLostReturnsInvalidCode(t *testing.T) {
	code := "a1b2c3d4"
	future := time.Now().UTC().Add(10 * time.Minute)
	user := adminUser(t, "costa2026")
	user.ResetCode = &code
	user.ResetExpiry = &future

	repo := new(UserRepositoryMock)
	repo.On("GetUserByUsername", mock.Anything, "admin").Return(user, nil).Once()
	// между чтением и обновлением код перезаписан другим запросом
	repo.On("UpdatePasswordAndClearReset", mock.Anything, "admin", code, mock.Anything).
		Return(0, nil).Once()

	svc := NewAuthService(repo, session.NewStore(), new(MailerMock))

	err := svc.ConfirmReset(context.Background(), "admin", code, "newpass123", "newpass123")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
}
