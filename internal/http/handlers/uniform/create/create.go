// Package create реализует HTTP-обработчик для добавления позиции школьной формы.
//
// Handler принимает JSON-запрос с типом, размером, начальным остатком и ценой,
// валидирует данные и вызывает хранилище. Остаток и цена не могут быть
// отрицательными.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/school-management/internal/http/response"
	"github.com/magabrotheeeer/school-management/internal/lib/sl"
	"github.com/magabrotheeeer/school-management/internal/models"
)

// Handler управляет HTTP-запросами на добавление позиций формы.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Хранилище записей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс добавления позиции формы.
type Service interface {
	CreateUniform(ctx context.Context, uniform models.Uniform) (int, error)
}

// New создает новый Handler с переданными логгером и хранилищем.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить позицию школьной формы
// @Description Создает позицию складского учета формы. Возвращает ID созданной записи.
// @Tags Uniforms
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyUniform true "Данные новой позиции"
// @Success 200 {object} map[string]any "Успешное добавление"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при добавлении"
// @Router /uniforms [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.uniform.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUniform
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	uniform := models.Uniform{
		Type:     req.Type,
		Size:     req.Size,
		Stock:    req.Stock,
		UnitCost: req.UnitCost,
	}

	id, err := h.service.CreateUniform(r.Context(), uniform)
	if err != nil {
		log.Error("failed to create uniform", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create uniform"))
		return
	}

	log.Info("success to create uniform", slog.Any("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"last_added_id": id,
	}))
}
