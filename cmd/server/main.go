package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"creatorverse.backend/internal/config"
	"creatorverse.backend/internal/infrastructure/datasources/postgres"
	"creatorverse.backend/internal/infrastructure/jobs"
	"creatorverse.backend/internal/infrastructure/repositories"
	"creatorverse.backend/internal/interfaces/http/handlers"
	"creatorverse.backend/internal/interfaces/http/middleware"
	"creatorverse.backend/internal/interfaces/http/templates"
	"creatorverse.backend/internal/usecases"
	"creatorverse.backend/pkg/logger"
	"creatorverse.backend/pkg/metrics"
	"creatorverse.backend/pkg/redis"
)

var (
	loadDotenv     = godotenv.Load
	loadCfg        = config.Load
	initLog        = logger.Init
	initRedis      = redis.Init
	openDB         = postgres.Open
	parseTemplates = templates.Parse
	runServer      = func(srv *http.Server) error { return srv.ListenAndServe() }
	getStdDB       = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	notifySignals  = signal.Notify
	stopSignals    = signal.Stop
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	// the submit guard fails open, so a missing Redis only disables duplicate protection
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Warn(ctx, "Redis not available, duplicate submit guard disabled", zap.Error(err))
	} else {
		logger.Info(ctx, "Redis initialized")
	}
	defer redis.Close()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(ctx, "Database not available, pages will show load errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to PostgreSQL via GORM")
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	m := metrics.New()
	creatorRepo := repositories.NewInstrumentedCreatorRepository(repositories.NewCreatorRepository(db), m)
	creatorUsecase := usecases.NewCreatorUsecase(creatorRepo, cfg.Store.CallTimeout)

	pageHandler := handlers.NewPageHandler(creatorUsecase)
	creatorHandler := handlers.NewCreatorHandler(creatorUsecase)

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	healthJob := jobs.NewStoreHealthJob(creatorRepo, m, cfg.Jobs.HealthInterval)
	go healthJob.Start(jobCtx)

	r := newRouter(cfg, tmpl, routeDeps{
		pageHandler:    pageHandler,
		creatorHandler: creatorHandler,
		metricsHandler: m.Handler(),
		storeHealthy:   healthJob.Healthy,
		submitTTL:      cfg.Store.SubmitTTL,
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	notifySignals(quit, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals(quit)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-quit:
			logger.Info(ctx, "Shutting down server")
			healthJob.Stop()
			cancel()

			shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
			defer done()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error(ctx, "Server shutdown did not finish cleanly", zap.Error(err))
			}
		case <-jobCtx.Done():
		}
	}()

	logger.Info(ctx, "Creatorverse starting",
		zap.String("port", cfg.Server.Port),
		zap.String("health", fmt.Sprintf("http://localhost:%s/health", cfg.Server.Port)),
	)

	err = runServer(srv)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		cancel()
		<-stopped
		return fmt.Errorf("failed to start server: %w", err)
	}
	// ListenAndServe returns as soon as Shutdown starts; wait for in-flight requests
	cancel()
	<-stopped
	logger.Info(ctx, "Server stopped")
	return nil
}

func newRouter(cfg *config.Config, tmpl *template.Template, deps routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.SetHTMLTemplate(tmpl)

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)
	registerRoutes(r, deps)
	return r
}
