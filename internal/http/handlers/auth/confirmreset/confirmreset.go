// Package confirmreset реализует HTTP-обработчик подтверждения восстановления пароля.
//
// Обработчик принимает имя пользователя, одноразовый код и новый пароль с
// подтверждением. Несовпадение паролей сообщается отдельно; недействительный
// или просроченный код всегда даёт один и тот же ответ без уточнения причины.
package confirmreset

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/school-management/internal/http/response"
	"github.com/magabrotheeeer/school-management/internal/lib/sl"
	auth "github.com/magabrotheeeer/school-management/internal/services/auth"
)

// Request — структура входных данных для смены пароля по коду восстановления.
type Request struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Code            string `json:"code" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,min=6"`
}

// Handler обрабатывает HTTP-запросы на смену пароля по коду восстановления.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики аутентификации
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Service описывает интерфейс бизнес-логики подтверждения восстановления.
type Service interface {
	ConfirmReset(ctx context.Context, username, code, newPassword, confirmPassword string) error
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Смена пароля по коду восстановления
// @Description Проверяет одноразовый код и устанавливает новый пароль. Код одноразовый.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Код восстановления и новый пароль"
// @Success 200 {object} response.Response "Пароль изменен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Недействительный или просроченный код"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или несовпадение паролей"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /password/confirm [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.confirmreset"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	err := h.service.ConfirmReset(r.Context(), req.Username, req.Code, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordMismatch):
			log.Error("passwords do not match")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("passwords do not match"))
		case errors.Is(err, auth.ErrInvalidOrExpiredCode):
			log.Error("invalid or expired reset code")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid or expired reset code"))
		default:
			log.Error("failed to confirm reset", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
		}
		return
	}

	log.Info("password changed", slog.String("username", req.Username))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"password_changed": true,
	}))
}
