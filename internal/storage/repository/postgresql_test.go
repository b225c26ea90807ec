package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/school-management/internal/models"
)

func TestStorage_CreateClass(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	id, err := storage.CreateClass(ctx, models.Class{Name: "Primary One"})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	// повторное название отклоняется
	_, err = storage.CreateClass(ctx, models.Class{Name: "Primary One"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	classes, err := storage.ListClasses(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "Primary One", classes[0].Name)
}

func TestStorage_CreateStudent(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	classID := factory.CreateClass(t, "Primary Two")

	withClass := GetTestStudentData(&classID)

	withoutClass := GetTestStudentData(nil)
	withoutClass.Name = "Amina Nansubuga"

	tests := []struct {
		name    string
		student models.Student
	}{
		{
			name:    "student with class",
			student: withClass,
		},
		{
			name:    "student without class",
			student: withoutClass,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := storage.CreateStudent(ctx, tt.student)
			require.NoError(t, err)
			assert.Greater(t, id, 0)
		})
	}

	// список упорядочен по имени
	students, err := storage.ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Amina Nansubuga", students[0].Name)
	assert.Nil(t, students[0].ClassID)
	assert.Equal(t, "John Okello", students[1].Name)
	assert.Equal(t, &classID, students[1].ClassID)
}

func TestStorage_CreateUniform(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	id, err := storage.CreateUniform(ctx, GetTestUniformData())
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	uniforms, err := storage.ListUniforms(ctx)
	require.NoError(t, err)
	require.Len(t, uniforms, 1)
	assert.Equal(t, "Shirt", uniforms[0].Type)
	assert.Equal(t, 25, uniforms[0].Stock)
}

func TestStorage_ListIncomesByRange(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	jan1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	feb1 := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	// граничные даты входят в период, соседние — нет
	factory.CreateIncome(t, jan1, 500000, "Fees")
	factory.CreateIncome(t, jan31, 100000, "Donations")
	factory.CreateIncome(t, feb1, 700000, "Fees")

	incomes, err := storage.ListIncomesByRange(ctx, jan1, jan31)
	require.NoError(t, err)
	require.Len(t, incomes, 2)
	assert.Equal(t, "Fees", incomes[0].Source)
	assert.Equal(t, float64(500000), incomes[0].Amount)
	assert.Equal(t, "Donations", incomes[1].Source)
}

func TestStorage_ListExpensesByRange(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	jan1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	factory.CreateExpense(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), 200000, "Salaries")
	factory.CreateExpense(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 50000, "Supplies")

	expenses, err := storage.ListExpensesByRange(ctx, jan1, jan31)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Salaries", expenses[0].Category)
}

func TestStorage_CreateUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	id, err := storage.CreateUser(ctx, models.User{
		Username:     "admin",
		Email:        "admin@school.local",
		PasswordHash: "somehash",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	// имя и почта уникальны
	_, err = storage.CreateUser(ctx, models.User{
		Username:     "admin",
		Email:        "other@school.local",
		PasswordHash: "somehash",
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = storage.CreateUser(ctx, models.User{
		Username:     "other",
		Email:        "admin@school.local",
		PasswordHash: "somehash",
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestStorage_EnsureAdminUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	err := storage.EnsureAdminUser(ctx, "admin", "admin@school.local", "somehash")
	require.NoError(t, err)

	// повторный запуск не перезаписывает пароль
	err = storage.EnsureAdminUser(ctx, "admin", "admin@school.local", "otherhash")
	require.NoError(t, err)

	user, err := storage.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "somehash", user.PasswordHash)
	assert.Nil(t, user.ResetCode)
	assert.Nil(t, user.ResetExpiry)
}

func TestStorage_GetUserByUsername_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	_, err := storage.GetUserByUsername(context.Background(), "ghostuser")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestStorage_ResetCodeRoundTrip(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "admin", "admin@school.local", "somehash")

	expiry := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	err := storage.SetResetCode(ctx, "admin", "a1b2c3d4", expiry)
	require.NoError(t, err)

	user, err := storage.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, user.ResetCode)
	assert.Equal(t, "a1b2c3d4", *user.ResetCode)
	require.NotNil(t, user.ResetExpiry)
	assert.Equal(t, expiry, user.ResetExpiry.UTC())

	// неверный код не меняет пароль
	updated, err := storage.UpdatePasswordAndClearReset(ctx, "admin", "wrongcode", "newhash")
	require.NoError(t, err)
	assert.Equal(t, 0, updated)

	// верный код меняет пароль и очищает поля сброса
	updated, err = storage.UpdatePasswordAndClearReset(ctx, "admin", "a1b2c3d4", "newhash")
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	user, err = storage.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "newhash", user.PasswordHash)
	assert.Nil(t, user.ResetCode)
	assert.Nil(t, user.ResetExpiry)

	// код одноразовый
	updated, err = storage.UpdatePasswordAndClearReset(ctx, "admin", "a1b2c3d4", "thirdhash")
	require.NoError(t, err)
	assert.Equal(t, 0, updated)
}

func TestStorage_SetResetCode_UnknownUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	err := storage.SetResetCode(context.Background(), "ghostuser", "a1b2c3d4", time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
