package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"nsap-service/internal/cache"
	"nsap-service/internal/config"
	"nsap-service/internal/database/minio"
	"nsap-service/internal/database/postgres"
	"nsap-service/internal/database/redis"
	"nsap-service/internal/event"
	"nsap-service/internal/handlers"
	"nsap-service/internal/repository"
	"nsap-service/internal/services"

	"github.com/gofiber/fiber/v3"
)

func setupLogging() (*os.File, error) {
	logDir := filepath.Join("/nsap", "log", "nsap_service")
	err := os.MkdirAll(logDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	slog.SetDefault(slog.New(slog.NewJSONHandler(file, nil)))

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Printf("Failed to set up file logging, using stderr: %v", err)
	} else {
		defer logFile.Close()
	}

	cfg := config.New()

	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		log.Printf("error connect to database: %s", err)
		go postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}

	// Result cache. Falls back to the in-process store when Redis is
	// unavailable so aggregation endpoints keep answering.
	var cacheStore cache.Store
	redisClient, err := redis.NewRedisClient(cfg.RedisCfg)
	if err != nil {
		slog.Error("failed to connect to Redis, using in-process analytics cache", "error", err)
		cacheStore = cache.NewMemoryStore()
	} else {
		defer redisClient.Close()
		cacheStore = cache.NewRedisStore(redisClient.GetClient())
	}

	minioClient, err := minio.NewMinioClient(cfg.MinioCfg)
	if err != nil {
		slog.Error("failed to connect to MinIO, report archiving disabled", "error", err)
	}

	var auditPublisher services.AuditSink
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		slog.Error("failed to connect to RabbitMQ, audit events disabled", "error", err)
	} else {
		defer rabbitConn.Close()
		auditPublisher = event.NewAuditPublisher(rabbitConn)
	}

	sampleDayRepo := repository.NewSampleDayRepository(db)
	gearUnloadRepo := repository.NewGearUnloadRepository(db)
	vesselUnloadRepo := repository.NewVesselUnloadRepository(db)
	vesselCatchRepo := repository.NewVesselCatchRepository(db)
	sampleLengthRepo := repository.NewSampleLengthRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)

	referenceService := services.NewReferenceService(referenceRepo)
	referenceService.Reload(context.Background())

	analyticsStore := services.NewAnalyticsStore(sampleDayRepo, gearUnloadRepo, vesselUnloadRepo, vesselCatchRepo)
	analyticsService := services.NewAnalyticsService(analyticsStore, referenceService, cacheStore)

	samplingStore := services.NewSamplingStore(sampleDayRepo, gearUnloadRepo, vesselUnloadRepo, vesselCatchRepo, sampleLengthRepo, referenceRepo)
	samplingService := services.NewSamplingService(samplingStore, cacheStore, auditPublisher)
	editSessionService := services.NewEditSessionService(samplingService)

	var exportService *services.ExportService
	if minioClient != nil {
		exportService = services.NewExportService(analyticsService, minioClient.GetClient())
	} else {
		exportService = services.NewExportService(analyticsService, nil)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret)
	middleware := handlers.NewMiddleware(jwtService)

	app := fiber.New()
	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("NSAP service is healthy")
	})

	handlers.NewSamplingHandler(samplingService, middleware).Register(app)
	handlers.NewEditSessionHandler(editSessionService, middleware).Register(app)
	handlers.NewAnalyticsHandler(analyticsService, middleware).Register(app)
	handlers.NewReferenceHandler(referenceService, middleware).Register(app)
	handlers.NewExportHandler(exportService, middleware).Register(app)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
