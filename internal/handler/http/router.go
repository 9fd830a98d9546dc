package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(reportHandler ReportHandler, dailyCheckHandler DailyCheckHandler, frontendURL string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timelogger"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/departments", func(r chi.Router) {
			r.Get("/", reportHandler.ListDepartments)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/summary", reportHandler.GetDepartmentSummary)
				r.Get("/summary/export", reportHandler.ExportDepartmentSummary)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/entries", reportHandler.GetEmployeeEntries)
				r.Get("/entries/export", reportHandler.ExportEmployeeEntries)
				r.Get("/todos", reportHandler.GetEmployeeTodos)
				r.Get("/todos/export", reportHandler.ExportEmployeeTodos)
			})
		})

		r.Route("/daily-check", func(r chi.Router) {
			r.Get("/", dailyCheckHandler.Run)
			r.Post("/", dailyCheckHandler.Run)
		})
	})

	return r
}
