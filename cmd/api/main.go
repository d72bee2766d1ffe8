package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ALIAQIL/multilang-chat/internal/config"
	"github.com/ALIAQIL/multilang-chat/internal/db"
	apihttp "github.com/ALIAQIL/multilang-chat/internal/http"
	"github.com/ALIAQIL/multilang-chat/internal/repository"
	"github.com/ALIAQIL/multilang-chat/internal/service"
	"github.com/ALIAQIL/multilang-chat/internal/translator"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	roomRepo := repository.NewPgRoomRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)

	// El proveedor de traducción se construye explícitamente acá y se inyecta:
	// nunca un singleton ambiental. Sin API key el sistema arranca igual y
	// sirve originales sin traducir.
	var tr translator.Translator
	if cfg.TranslatorAPIKey != "" {
		tr = translator.NewClient(cfg.TranslatorBaseURL, cfg.TranslatorAPIKey, cfg.TranslatorModel, logger)
	} else {
		logger.Warn("translator api key not configured, serving originals only")
		tr = translator.NewDisabled("translator api key not configured")
	}

	var sendLimiter service.SendRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			sendLimiter = service.NewRedisSendRateLimiter(
				redisClient,
				time.Duration(cfg.SendRateWindowSeconds)*time.Second,
				cfg.SendRateMax,
			)
		}
		cancel()
	}

	translateTimeout := time.Duration(cfg.TranslateTimeout) * time.Second
	fanoutSvc := service.NewFanoutService(logger, messageRepo, tr, translateTimeout)
	historySvc := service.NewHistoryService(logger, messageRepo, tr, translateTimeout)

	roomHandler := apihttp.NewRoomHandler(logger, roomRepo, cfg.DefaultLanguage)
	messageHandler := apihttp.NewMessageHandler(logger, roomRepo, fanoutSvc, historySvc, sendLimiter, cfg.DefaultLanguage)
	router := apihttp.NewRouter(logger, roomHandler, messageHandler, func(ctx context.Context) error {
		return db.Ping(ctx, pool)
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
