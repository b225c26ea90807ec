package services

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/school-management/internal/lib/smtp"
)

type fakeClient struct {
	buf     bytes.Buffer
	mailErr error
	rcptErr error
	from    string
	rcpts   []string
}

func (c *fakeClient) Mail(from string) error {
	c.from = from
	return c.mailErr
}

func (c *fakeClient) Rcpt(to string) error {
	c.rcpts = append(c.rcpts, to)
	return c.rcptErr
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func (c *fakeClient) Data() (io.WriteCloser, error) { return nopWriteCloser{&c.buf}, nil }
func (c *fakeClient) Quit() error                   { return nil }
func (c *fakeClient) Close() error                  { return nil }

type fakeTransport struct {
	client     *fakeClient
	connectErr error
}

func (t *fakeTransport) Connect() (smtp.Client, error) {
	if t.connectErr != nil {
		return nil, t.connectErr
	}
	return t.client, nil
}

func (t *fakeTransport) GetSMTPUser() string { return "mailer@school.local" }

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSendResetCode_Success(t *testing.T) {
	client := &fakeClient{}
	sender := NewSenderService(newNoopLogger(), &fakeTransport{client: client})

	expiry := time.Date(2026, 1, 2, 15, 30, 0, 0, time.UTC)
	err := sender.SendResetCode("admin@school.local", "admin", "a1b2c3d4", expiry)
	require.NoError(t, err)

	assert.Equal(t, "mailer@school.local", client.from)
	assert.Equal(t, []string{"admin@school.local"}, client.rcpts)

	body := client.buf.String()
	assert.Contains(t, body, "Subject: Password reset code")
	assert.Contains(t, body, "a1b2c3d4")
	assert.Contains(t, body, "2026-01-02 15:30 UTC")
	assert.Contains(t, body, "Hello, admin!")
}

func TestSendResetCode_ConnectError(t *testing.T) {
	sender := NewSenderService(newNoopLogger(), &fakeTransport{connectErr: errors.New("dial tcp: refused")})

	err := sender.SendResetCode("admin@school.local", "admin", "a1b2c3d4", time.Now())
	assert.Error(t, err)
}

func TestSendResetCode_RcptError(t *testing.T) {
	client := &fakeClient{rcptErr: errors.New("mailbox unavailable")}
	sender := NewSenderService(newNoopLogger(), &fakeTransport{client: client})

	err := sender.SendResetCode("admin@school.local", "admin", "a1b2c3d4", time.Now())
	assert.Error(t, err)
}
