// Package requestreset реализует HTTP-обработчик запроса кода восстановления пароля.
//
// Обработчик принимает имя пользователя, делегирует генерацию кода сервису
// аутентификации и сообщает срок действия кода. Код отправляется на
// электронную почту пользователя и в ответе не возвращается.
package requestreset

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/school-management/internal/http/response"
	"github.com/magabrotheeeer/school-management/internal/lib/sl"
	auth "github.com/magabrotheeeer/school-management/internal/services/auth"
)

// Request — структура входных данных для запроса кода восстановления.
type Request struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
}

// Handler обрабатывает HTTP-запросы на выдачу кода восстановления пароля.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики аутентификации
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Service описывает интерфейс бизнес-логики восстановления пароля.
type Service interface {
	RequestReset(ctx context.Context, username string) (time.Time, error)
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
// @Summary Запрос кода восстановления пароля
// @Description Генерирует одноразовый код восстановления и отправляет его на почту пользователя.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Имя пользователя"
// @Success 200 {object} map[string]any "Код отправлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Не удалось отправить письмо"
// @Router /password/reset [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.requestreset"

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

	expiry, err := h.service.RequestReset(r.Context(), req.Username)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			log.Error("user not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, auth.ErrNotificationFailed):
			// код сохранен и действителен, не удалось только письмо
			log.Error("failed to deliver reset code", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("failed to deliver reset code"))
		default:
			log.Error("failed to request reset", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
		}
		return
	}

	log.Info("reset code issued", slog.String("username", req.Username))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"expires_at": expiry.UTC().Format(time.RFC3339),
	}))
}
