// Package schoolmanagement предоставляет маршруты для основного приложения.
package schoolmanagement

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/school-management/internal/http/handlers/auth/confirmreset"
	"github.com/magabrotheeeer/school-management/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/school-management/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/school-management/internal/http/handlers/auth/requestreset"
	classcreate "github.com/magabrotheeeer/school-management/internal/http/handlers/class/create"
	classlist "github.com/magabrotheeeer/school-management/internal/http/handlers/class/list"
	expensecreate "github.com/magabrotheeeer/school-management/internal/http/handlers/expense/create"
	incomecreate "github.com/magabrotheeeer/school-management/internal/http/handlers/income/create"
	reportexportpdf "github.com/magabrotheeeer/school-management/internal/http/handlers/report/exportpdf"
	reportexportxlsx "github.com/magabrotheeeer/school-management/internal/http/handlers/report/exportxlsx"
	reportgenerate "github.com/magabrotheeeer/school-management/internal/http/handlers/report/generate"
	studentcreate "github.com/magabrotheeeer/school-management/internal/http/handlers/student/create"
	studentlist "github.com/magabrotheeeer/school-management/internal/http/handlers/student/list"
	uniformcreate "github.com/magabrotheeeer/school-management/internal/http/handlers/uniform/create"
	uniformlist "github.com/magabrotheeeer/school-management/internal/http/handlers/uniform/list"
	"github.com/magabrotheeeer/school-management/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/school-management/internal/services/auth"
	reportservice "github.com/magabrotheeeer/school-management/internal/services/report"
	"github.com/magabrotheeeer/school-management/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage,
	authService *authservice.AuthService, reportService *reportservice.ReportService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Post("/password/reset", requestreset.New(logger, authService).ServeHTTP)
		r.Post("/password/confirm", confirmreset.New(logger, authService).ServeHTTP)

		// Группа с сессионной аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/logout", logout.New(logger, authService).ServeHTTP)
			r.Post("/classes", classcreate.New(logger, db).ServeHTTP)
			r.Get("/classes", classlist.New(logger, db).ServeHTTP)
			r.Post("/students", studentcreate.New(logger, db).ServeHTTP)
			r.Get("/students", studentlist.New(logger, db).ServeHTTP)
			r.Post("/uniforms", uniformcreate.New(logger, db).ServeHTTP)
			r.Get("/uniforms", uniformlist.New(logger, db).ServeHTTP)
			r.Post("/incomes", incomecreate.New(logger, db).ServeHTTP)
			r.Post("/expenses", expensecreate.New(logger, db).ServeHTTP)
			r.Post("/reports", reportgenerate.New(logger, reportService).ServeHTTP)
			r.Get("/reports/export/xlsx", reportexportxlsx.New(logger, reportService).ServeHTTP)
			r.Get("/reports/export/pdf", reportexportpdf.New(logger, reportService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
