package requestreset_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/school-management/internal/http/handlers/auth/requestreset"
	auth "github.com/magabrotheeeer/school-management/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) RequestReset(ctx context.Context, username string) (time.Time, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(time.Time), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestRequestResetHandler(t *testing.T) {
	expiry := time.Now().Add(30 * time.Minute)

	tests := []struct {
		name           string
		body           any
		mockErr        error
		mockExpected   bool
		wantStatusCode int
	}{
		{
			name:           "success",
			body:           map[string]string{"username": "admin"},
			mockErr:        nil,
			mockExpected:   true,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "user not found",
			body:           map[string]string{"username": "ghostuser"},
			mockErr:        auth.ErrUserNotFound,
			mockExpected:   true,
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "delivery failed",
			body:           map[string]string{"username": "admin"},
			mockErr:        errors.Join(auth.ErrNotificationFailed, errors.New("smtp refused")),
			mockExpected:   true,
			wantStatusCode: http.StatusBadGateway,
		},
		{
			name:           "validation failure",
			body:           map[string]string{"username": ""},
			mockExpected:   false,
			wantStatusCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.mockExpected {
				svc.On("RequestReset", mock.Anything, mock.Anything).
					Return(expiry, tt.mockErr).Once()
			}

			handler := requestreset.New(newNoopLogger(), svc)

			bodyBytes, err := json.Marshal(tt.body)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/password/reset", bytes.NewReader(bodyBytes))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			if tt.wantStatusCode == http.StatusOK {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				data := resp["data"].(map[string]any)
				assert.Equal(t, expiry.UTC().Format(time.RFC3339), data["expires_at"])
			}
			svc.AssertExpectations(t)
		})
	}
}
