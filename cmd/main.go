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

	"github.com/Dosada05/pereval-api/config"
	"github.com/Dosada05/pereval-api/db"
	"github.com/Dosada05/pereval-api/feed"
	"github.com/Dosada05/pereval-api/handlers"
	"github.com/Dosada05/pereval-api/repositories"
	api "github.com/Dosada05/pereval-api/routes"
	"github.com/Dosada05/pereval-api/services"
	"github.com/Dosada05/pereval-api/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

// @title Pereval API
// @version 1.0
// @description Сервис приёма и модерации заявок на горные перевалы.
// @BasePath /api
func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if err := db.EnsureSchema(context.Background(), dbConn); err != nil {
		logger.Error("failed to ensure database schema", slog.Any("error", err))
		os.Exit(1)
	}

	// Инициализация загрузчика файлов (Cloudflare R2)
	cloudflareUploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	// Лента заявок для модераторов
	feedHub := feed.NewHub(logger)
	go feedHub.Run()
	logger.Info("feed hub started")

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	coordsRepo := repositories.NewPostgresCoordsRepository(dbConn)
	levelRepo := repositories.NewPostgresLevelRepository(dbConn)
	perevalRepo := repositories.NewPostgresPerevalRepository(dbConn)
	imageRepo := repositories.NewPostgresImageRepository(dbConn)
	logger.Info("repositories initialized")

	// Ядро: менеджер заявок
	perevalService := services.NewPerevalService(
		dbConn, // для управления транзакциями submit/update
		userRepo,
		coordsRepo,
		levelRepo,
		perevalRepo,
		imageRepo,
		cloudflareUploader,
		feedHub,
		logger,
	)
	logger.Info("services initialized")

	// Инициализация обработчиков HTTP
	perevalHandler := handlers.NewPerevalHandler(perevalService)
	webSocketHandler := handlers.NewWebSocketHandler(feedHub, logger)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, perevalHandler, webSocketHandler)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
