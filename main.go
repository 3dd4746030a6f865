package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bikestore/api"
	"bikestore/config"
	"bikestore/database"
	analyticsapp "bikestore/internal/analytics/application"
	analyticsdomain "bikestore/internal/analytics/domain"
	datasetapp "bikestore/internal/dataset/application"
	datasetinfra "bikestore/internal/dataset/infrastructure"
	exportapp "bikestore/internal/export/application"
	sharedinfra "bikestore/internal/shared/infrastructure"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Configuration (.env optionnel)
	if err := godotenv.Load(); err != nil {
		log.Println("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}
	cfg := config.LoadEnv()

	// 2. Logger
	appLogger, err := sharedinfra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	// 3. Source des tables
	ctx := context.Background()
	source, db, err := newSource(ctx, cfg)
	if err != nil {
		appLogger.Fatal("failed to open source", zap.String("kind", cfg.Source.Kind), zap.Error(err))
	}
	if db != nil {
		defer db.Close()
	}

	// 4. Services
	factCache := sharedinfra.NewInMemoryCache[*analyticsdomain.FactTable](time.Minute)
	defer factCache.Close()

	loader := datasetapp.NewLoader(appLogger)
	dashboard := analyticsapp.NewDashboardService(loader, source, factCache, cfg.Dashboard.FactCacheTTL, appLogger)
	if err := dashboard.Reload(ctx); err != nil {
		// le serveur démarre quand même: /api/reload permet de réessayer
		appLogger.Error("initial load failed", zap.Error(err))
	}
	exportService := exportapp.NewExportService(dashboard, appLogger)

	// 5. HTTP
	if !cfg.Logger.IsDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestLogger(appLogger))

	handlers := api.NewHandlers(dashboard, exportService, api.Limits{
		Top:   cfg.Dashboard.TopLimit,
		Staff: cfg.Dashboard.StaffLimit,
	}, appLogger)
	handlers.Register(r)

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	srv := &http.Server{
		Addr:              port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port), zap.String("source", cfg.Source.Kind))

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

// newSource ouvre la source configurée (répertoire CSV ou PostgreSQL)
func newSource(ctx context.Context, cfg *config.Config) (datasetapp.Source, *sqlx.DB, error) {
	switch cfg.Source.Kind {
	case config.SourcePostgres:
		db, err := database.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		return datasetinfra.NewPostgresSource(db, cfg.Source.Schema), db, nil
	case config.SourceCSV:
		return datasetinfra.NewCSVSource(cfg.Source.CSVDir), nil, nil
	default:
		return nil, nil, errors.New("unknown source kind " + cfg.Source.Kind)
	}
}
