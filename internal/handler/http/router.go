package http

import (
	"io"
	"log/slog"

	"github.com/elmallah-hr/attendance-backend-go/internal/handler/http/middleware"
	"github.com/elmallah-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	// AllowedOrigins are the dashboard origins permitted by CORS
	AllowedOrigins []string
	// Logger receives request logs; it should use httplog.SchemaECS attributes
	Logger *slog.Logger
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, attendanceHandler AttendanceHandler, reportHandler ReportHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  slog.LevelDebug,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1/attendance", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Post("/analyze", attendanceHandler.Analyze)
		r.Route("/export", func(r chi.Router) {
			r.Post("/csv", attendanceHandler.ExportCSV)
			r.Post("/xlsx", attendanceHandler.ExportXLSX)
		})
		r.Post("/reports/{employeeID}", reportHandler.EmployeeReport)
		r.Get("/directory", attendanceHandler.Directory)
	})

	return r
}

// NewRequestLogger builds the ECS-formatted JSON logger used for request logs.
func NewRequestLogger(out io.Writer, level slog.Leveler, app, version, env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", app),
		slog.String("version", version),
		slog.String("env", env),
	)
}
