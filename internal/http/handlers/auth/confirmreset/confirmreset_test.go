package confirmreset_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/school-management/internal/http/handlers/auth/confirmreset"
	auth "github.com/magabrotheeeer/school-management/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ConfirmReset(ctx context.Context, username, code, newPassword, confirmPassword string) error {
	args := m.Called(ctx, username, code, newPassword, confirmPassword)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func validBody() map[string]string {
	return map[string]string{
		"username":         "admin",
		"code":             "a1b2c3d4",
		"new_password":     "newsecret",
		"confirm_password": "newsecret",
	}
}

func TestConfirmResetHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockErr        error
		mockExpected   bool
		wantStatusCode int
	}{
		{
			name:           "success",
			body:           validBody(),
			mockErr:        nil,
			mockExpected:   true,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "passwords do not match",
			body:           validBody(),
			mockErr:        auth.ErrPasswordMismatch,
			mockExpected:   true,
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "invalid or expired code",
			body:           validBody(),
			mockErr:        auth.ErrInvalidOrExpiredCode,
			mockExpected:   true,
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "missing code",
			body: map[string]string{
				"username":         "admin",
				"new_password":     "newsecret",
				"confirm_password": "newsecret",
			},
			mockExpected:   false,
			wantStatusCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.mockExpected {
				svc.On("ConfirmReset", mock.Anything, tt.body["username"], tt.body["code"],
					tt.body["new_password"], tt.body["confirm_password"]).
					Return(tt.mockErr).Once()
			}

			handler := confirmreset.New(newNoopLogger(), svc)

			bodyBytes, err := json.Marshal(tt.body)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/password/confirm", bytes.NewReader(bodyBytes))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
