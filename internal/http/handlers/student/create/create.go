// Package create реализует HTTP-обработчик для зачисления нового ученика.
//
// Handler принимает JSON-запрос с данными ученика, валидирует их, парсит дату
// зачисления и вызывает хранилище. Класс указывать необязательно: ученик может
// быть зачислен без распределения.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/school-management/internal/http/response"
	"github.com/magabrotheeeer/school-management/internal/lib/sl"
	"github.com/magabrotheeeer/school-management/internal/models"
)

// Handler управляет HTTP-запросами на зачисление учеников.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Хранилище записей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс зачисления ученика.
type Service interface {
	CreateStudent(ctx context.Context, student models.Student) (int, error)
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
// @Summary Зачислить ученика
// @Description Создает запись об ученике. Возвращает ID созданной записи.
// @Tags Students
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyStudent true "Данные нового ученика"
// @Success 200 {object} map[string]any "Успешное зачисление"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при зачислении"
// @Router /students [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.student.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyStudent
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

	enrollmentDate, err := time.Parse("2006-01-02", req.EnrollmentDate)
	if err != nil {
		log.Error("failed to parse enrollment date", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid enrollment date"))
		return
	}

	student := models.Student{
		Name:           req.Name,
		Age:            req.Age,
		EnrollmentDate: enrollmentDate,
		ClassID:        req.ClassID,
	}

	id, err := h.service.CreateStudent(r.Context(), student)
	if err != nil {
		log.Error("failed to create student", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create student"))
		return
	}

	log.Info("success to create student", slog.Any("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"last_added_id": id,
	}))
}
