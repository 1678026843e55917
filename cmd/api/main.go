package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elmallah-hr/attendance-backend-go/internal/config"
	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
	appHTTP "github.com/elmallah-hr/attendance-backend-go/internal/handler/http"
	"github.com/elmallah-hr/attendance-backend-go/internal/pkg/cron"
	"github.com/elmallah-hr/attendance-backend-go/internal/pkg/database"
	"github.com/elmallah-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/elmallah-hr/attendance-backend-go/internal/pkg/storage"
	"github.com/elmallah-hr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/elmallah-hr/attendance-backend-go/internal/service/attendance"
	directoryService "github.com/elmallah-hr/attendance-backend-go/internal/service/directory"
	"github.com/elmallah-hr/attendance-backend-go/internal/service/file"
	reportService "github.com/elmallah-hr/attendance-backend-go/internal/service/report"
)

const (
	appName    = "attendance-analysis"
	appVersion = "v1.0.0"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := attendanceService.NewEngine(
		attendanceService.WithRestDay(cfg.Analysis.RestDay),
		attendanceService.WithLocale(cfg.Analysis.Locale),
		attendanceService.WithLocation(cfg.Analysis.Location),
		attendanceService.WithTargetWorkday(cfg.Analysis.TargetWorkday),
	)

	scheduler := cron.NewScheduler()

	directory, closeDirectory, err := newDirectoryProvider(ctx, cfg, scheduler)
	if err != nil {
		return err
	}
	defer closeDirectory()

	var fileService file.FileService
	if cfg.Storage.ArchiveUploads {
		localStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return fmt.Errorf("error initializing storage: %w", err)
		}
		fileService = file.NewFileService(localStorage)
		slog.Info("Upload archival enabled", "base_path", cfg.Storage.BasePath)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	analysisService := attendanceService.NewAnalysisService(engine, directory, fileService, cfg.Analysis.MaxUploadBytes())
	reportSvc := reportService.NewReportService(analysisService, engine)

	attendanceHandler := appHTTP.NewAttendanceHandler(analysisService, cfg.Analysis.MaxUploadBytes())
	reportHandler := appHTTP.NewReportHandler(reportSvc, cfg.Analysis.MaxUploadBytes())

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		AllowedOrigins: []string{cfg.App.FrontendURL},
		Logger:         appHTTP.NewRequestLogger(os.Stdout, cfg.SlogLevel(), appName, appVersion, cfg.App.Env),
	}, JWTService, attendanceHandler, reportHandler)

	scheduler.Start(ctx)
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "addr", srv.Addr, "rest_day", cfg.Analysis.RestDay.String(), "locale", cfg.Analysis.Locale.Code)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newDirectoryProvider builds the configured directory source. File and
// PostgreSQL sources are cached and refreshed by the scheduler.
func newDirectoryProvider(ctx context.Context, cfg *config.Config, scheduler *cron.Scheduler) (attendance.DirectoryProvider, func(), error) {
	noop := func() {}

	var (
		repo    attendance.DirectoryRepository
		closeFn = noop
	)
	switch cfg.Directory.Source {
	case config.DirectorySourceFile:
		repo = directoryService.NewFileRepository(cfg.Directory.File)
	case config.DirectorySourcePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.DefaultPoolConfig)
		if err != nil {
			return nil, noop, fmt.Errorf("error connecting to database: %w", err)
		}
		repo = postgresql.NewDirectoryRepository(db, cfg.Directory.CompanyID)
		closeFn = db.Close
	default:
		slog.Info("No employee directory configured; names fall back to placeholders")
		return directoryService.NewStaticProvider(nil), noop, nil
	}

	cached := directoryService.NewCachedProvider(repo, cfg.Directory.Source)
	if err := cron.NewDirectoryJobs(cached, cfg.Directory.RefreshInterval).RegisterJobs(scheduler); err != nil {
		closeFn()
		return nil, noop, err
	}
	return cached, closeFn, nil
}
