// Package schoolmanagement собирает приложение школьного учета:
// хранилище, миграции, учетную запись администратора, сервисы и HTTP-сервер.
package schoolmanagement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/school-management/internal/config"
	"github.com/magabrotheeeer/school-management/internal/lib/password"
	"github.com/magabrotheeeer/school-management/internal/lib/session"
	"github.com/magabrotheeeer/school-management/internal/lib/smtp"
	"github.com/magabrotheeeer/school-management/internal/migrations"
	authservice "github.com/magabrotheeeer/school-management/internal/services/auth"
	reportservice "github.com/magabrotheeeer/school-management/internal/services/report"
	senderservice "github.com/magabrotheeeer/school-management/internal/services/sender"
	"github.com/magabrotheeeer/school-management/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и соединение с базой данных.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New собирает приложение: подключает базу, применяет миграции,
// создает учетную запись администратора и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	if err = bootstrapAdmin(ctx, cfg, db); err != nil {
		return nil, err
	}

	sessions := session.NewStore()
	transport := smtp.NewTransport(cfg, logger)
	sender := senderservice.NewSenderService(logger, transport)

	authService := authservice.NewAuthService(db, sessions, sender)
	reportService := reportservice.NewReportService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, authService, reportService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// bootstrapAdmin создает учетную запись администратора при первом запуске.
// Повторные запуски ничего не меняют: пароль существующего администратора
// не перезаписывается.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, db *repository.Storage) error {
	const op = "app.bootstrapAdmin"

	hash, err := password.GetHash(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := db.EnsureAdminUser(ctx, cfg.AdminUsername, cfg.AdminEmail, hash); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста
// либо ошибки сервера. При отмене выполняется graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
