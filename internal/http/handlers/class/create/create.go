// Package create реализует HTTP-обработчик для создания учебного класса.
//
// Handler принимает JSON-запрос с названием класса, валидирует его,
// вызывает хранилище и возвращает ID созданной записи. Повторное название
// класса отклоняется с кодом 409.
package create

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
	"github.com/magabrotheeeer/school-management/internal/models"
	"github.com/magabrotheeeer/school-management/internal/storage/repository"
)

// Request — структура входных данных для создания класса.
type Request struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// Handler управляет HTTP-запросами на создание классов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Хранилище записей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс создания класса.
type Service interface {
	CreateClass(ctx context.Context, class models.Class) (int, error)
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
// @Summary Создать учебный класс
// @Description Создает класс с уникальным названием. Возвращает ID созданной записи.
// @Tags Classes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Данные нового класса"
// @Success 200 {object} map[string]any "Успешное создание класса"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "Класс с таким названием уже существует"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании класса"
// @Router /classes [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.class.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	id, err := h.service.CreateClass(r.Context(), models.Class{Name: req.Name})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			log.Error("class already exists", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("class with this name already exists"))
			return
		}
		log.Error("failed to create class", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create class"))
		return
	}

	log.Info("success to create class", slog.Any("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"last_added_id": id,
	}))
}
