// Package generate реализует HTTP-обработчик формирования финансового отчета.
//
// Handler принимает период отчета, делегирует агрегацию сервису отчетов и
// возвращает табличное представление: доходы, расходы и три строки итогов.
package generate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/school-management/internal/export"
	"github.com/magabrotheeeer/school-management/internal/http/response"
	"github.com/magabrotheeeer/school-management/internal/lib/sl"
	"github.com/magabrotheeeer/school-management/internal/models"
)

// Request — структура входных данных для формирования отчета.
//
// Обе даты включаются в период отчета.
type Request struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// Handler управляет HTTP-запросами на формирование отчетов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис формирования отчетов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс формирования финансового отчета.
type Service interface {
	Generate(ctx context.Context, start, end time.Time) (*models.ReportBundle, error)
}

// New создает новый Handler с переданными логгером и сервисом отчетов.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сформировать финансовый отчет
// @Description Возвращает табличное представление отчета за период: доходы, расходы и итоги.
// @Tags Reports
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Период отчета, даты включительно"
// @Success 200 {object} map[string]any "Табличное представление отчета"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или период"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при формировании"
// @Router /reports [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.generate"
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

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	bundle, err := h.service.Generate(r.Context(), start, end)
	if err != nil {
		log.Error("failed to generate report", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("could not generate report"))
		return
	}

	log.Info("report generated",
		slog.String("start", req.StartDate),
		slog.String("end", req.EndDate))
	render.JSON(w, r, response.StatusOKWithData(export.Table(bundle)))
}
