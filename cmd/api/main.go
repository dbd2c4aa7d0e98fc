package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	_ "github.com/unipub/pubmeta-api/api/swagger"
	"github.com/unipub/pubmeta-api/internal/repository"
	"github.com/unipub/pubmeta-api/internal/router"
	"github.com/unipub/pubmeta-api/internal/service"
	"github.com/unipub/pubmeta-api/pkg/cache"
	"github.com/unipub/pubmeta-api/pkg/config"
	"github.com/unipub/pubmeta-api/pkg/database"
	"github.com/unipub/pubmeta-api/pkg/logger"

	apihandler "github.com/unipub/pubmeta-api/internal/handler"
)

// @title PubMeta API
// @version 1.0.0
// @description Academic publication metadata catalogue
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var redisClient *redis.Client
	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, true)
		}
	}

	validate := validator.New()

	journalRepo := repository.NewJournalRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	instituteRepo := repository.NewInstituteRepository(db)
	divisionRepo := repository.NewDivisionRepository(db)
	publicationRepo := repository.NewPublicationRepository(db)

	journalSvc := service.NewJournalService(journalRepo, cacheSvc, validate, logr)
	facultySvc := service.NewFacultyService(facultyRepo, validate, logr)
	instituteSvc := service.NewInstituteService(instituteRepo, facultyRepo, validate, logr)
	divisionSvc := service.NewDivisionService(divisionRepo, instituteRepo, validate, logr)
	publicationSvc := service.NewPublicationService(publicationRepo, journalRepo, divisionRepo, validate, logr)

	var exportSvc *service.ExportService
	if cfg.Export.Enabled {
		exportSvc = service.NewExportService(journalRepo, cfg.Export.MaxRows, logr)
	}

	handlers := router.Handlers{
		Faculties:    apihandler.NewFacultyHandler(facultySvc, instituteSvc),
		Institutes:   apihandler.NewInstituteHandler(instituteSvc, divisionSvc),
		Divisions:    apihandler.NewDivisionHandler(divisionSvc),
		Publications: apihandler.NewPublicationHandler(publicationSvc),
	}
	if exportSvc != nil {
		handlers.Journals = apihandler.NewJournalHandler(journalSvc, exportSvc)
	} else {
		handlers.Journals = apihandler.NewJournalHandler(journalSvc, nil)
	}

	engine := router.New(cfg, logr, metricsSvc, handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Sugar().Infow("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Sugar().Errorw("forced shutdown", "error", err)
	}
	logr.Sugar().Infow("server stopped")
}
