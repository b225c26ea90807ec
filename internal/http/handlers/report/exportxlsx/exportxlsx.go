// Package exportxlsx реализует HTTP-обработчик выгрузки финансового отчета
// в виде xlsx-файла.
//
// Период отчета передается параметрами запроса start и end в формате
// 2006-01-02; обе даты включаются в период.
package exportxlsx

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/school-management/internal/export"
	"github.com/magabrotheeeer/school-management/internal/http/response"
	"github.com/magabrotheeeer/school-management/internal/lib/sl"
	"github.com/magabrotheeeer/school-management/internal/models"
)

// Handler управляет HTTP-запросами на выгрузку отчета в xlsx.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис формирования отчетов
}

// Service описывает интерфейс формирования финансового отчета.
type Service interface {
	Generate(ctx context.Context, start, end time.Time) (*models.ReportBundle, error)
}

// New создает новый Handler с переданными логгером и сервисом отчетов.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выгрузить отчет в xlsx
// @Description Формирует отчет за период и возвращает его в виде xlsx-файла.
// @Tags Reports
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start query string true "Начало периода в формате 2006-01-02"
// @Param end query string true "Конец периода в формате 2006-01-02"
// @Success 200 {file} file "xlsx-файл отчета"
// @Failure 400 {object} response.ErrorResponse "Некорректный период"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при формировании"
// @Router /reports/export/xlsx [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.exportxlsx"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		log.Error("failed to parse start date", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid start date"))
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		log.Error("failed to parse end date", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid end date"))
		return
	}

	bundle, err := h.service.Generate(r.Context(), start, end)
	if err != nil {
		log.Error("failed to generate report", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("could not generate report"))
		return
	}

	data, err := export.Excel(bundle)
	if err != nil {
		log.Error("failed to build xlsx", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build xlsx"))
		return
	}

	filename := fmt.Sprintf("financial_report_%s_%s.xlsx",
		start.Format("2006-01-02"), end.Format("2006-01-02"))

	log.Info("xlsx report exported", slog.String("filename", filename))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
