// Package list реализует HTTP-обработчик для получения складского списка формы.
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

// Handler управляет HTTP-запросами на чтение списка позиций формы.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Хранилище записей
}

// Service описывает интерфейс чтения списка позиций формы.
type Service interface {
	ListUniforms(ctx context.Context) ([]*models.Uniform, error)
}

// New создает новый Handler с переданными логгером и хранилищем.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Складской список школьной формы
// @Description Возвращает все позиции формы, упорядоченные по типу и размеру.
// @Tags Uniforms
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список позиций"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /uniforms [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.uniform.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.ListUniforms(r.Context())
	if err != nil {
		log.Error("failed to list uniforms", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list uniforms"))
		return
	}

	log.Info("list uniforms", "count", len(res))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(res),
		"uniforms":   res,
	}))
}
