// Package create реализует HTTP-обработчик для записи расхода в кассовую книгу.
//
// Журнал расходов только пополняется: операции изменения и удаления не
// предусмотрены.
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

// Handler управляет HTTP-запросами на запись расходов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Хранилище записей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс записи расхода.
type Service interface {
	CreateExpense(ctx context.Context, expense models.Expense) (int, error)
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
// @Summary Записать расход
// @Description Добавляет запись о расходе в кассовую книгу. Возвращает ID созданной записи.
// @Tags Finance
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyLedgerEntry true "Данные расхода: дата, сумма и категория"
// @Success 200 {object} map[string]any "Успешная запись"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при записи"
// @Router /expenses [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyLedgerEntry
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

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		log.Error("failed to parse date", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid date"))
		return
	}

	expense := models.Expense{
		Date:     date,
		Amount:   req.Amount,
		Category: req.Category,
	}

	id, err := h.service.CreateExpense(r.Context(), expense)
	if err != nil {
		log.Error("failed to create expense", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create expense"))
		return
	}

	log.Info("success to create expense", slog.Any("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"last_added_id": id,
	}))
}
