// Package list реализует HTTP-обработчик для получения списка учебных классов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/school-management/internal/http/response"
	"github.com/magabrotheeeer/school-management/internal/lib/sl"
	"github.com/magabrotheeeer/school-management/internal/models"
)

// Handler управляет HTTP-запросами на чтение списка классов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Хранилище записей
}

// Service описывает интерфейс чтения списка классов.
type Service interface {
	ListClasses(ctx context.Context) ([]*models.Class, error)
}

// New создает новый Handler с переданными логгером и хранилищем.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список учебных классов
// @Description Возвращает все классы, упорядоченные по названию.
// @Tags Classes
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список классов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /classes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.class.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.ListClasses(r.Context())
	if err != nil {
		log.Error("failed to list classes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list classes"))
		return
	}

	log.Info("list classes", "count", len(res))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(res),
		"classes":    res,
	}))
}
