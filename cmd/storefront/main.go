package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sujatha-boutique/storefront/internal/admin"
	catalogHTTP "github.com/sujatha-boutique/storefront/internal/catalog/delivery/http"
	"github.com/sujatha-boutique/storefront/internal/catalog/domain"
	"github.com/sujatha-boutique/storefront/internal/catalog/repository"
	"github.com/sujatha-boutique/storefront/internal/upload"
	"github.com/sujatha-boutique/storefront/kafka"
	"github.com/sujatha-boutique/storefront/pkg/database"
	"github.com/sujatha-boutique/storefront/pkg/logger"
	"github.com/sujatha-boutique/storefront/pkg/tracing"
)

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "storefront")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting storefront service")

	// Tracing
	tp, err := tracing.InitTracer(serviceName, getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"))
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Database
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "storefront"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database, check connection configuration")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	gormRepo := repository.NewGormProductRepository(db)
	if err := gormRepo.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Repository stack: GORM core, tracing spans, optional Redis cache.
	var repo domain.ProductRepository = repository.NewTracingProductRepository(gormRepo)
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
		repo = repository.NewCachedProductRepository(repo, redisClient)
		logger.Logger.Info().Str("redis_addr", redisAddr).Msg("Catalog cache enabled")
	}

	// Optional Kafka publisher for catalog change events.
	var events catalogHTTP.EventPublisher
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		publisher, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize Kafka publisher, continuing without events")
		} else {
			defer publisher.Close()
			events = publisher
		}
	}

	// Image storage backend
	storage := newUploadStorage()
	uploadHandler := upload.NewHandler(storage)

	productHandler := catalogHTTP.NewProductHandler(repo, events)
	adminHandler := admin.NewHandler(os.Getenv("ADMIN_PASSWORD_HASH"))

	// Router
	router := mux.NewRouter()
	productHandler.RegisterRoutes(router)
	adminHandler.RegisterRoutes(router)
	router.HandleFunc("/api/upload", catalogHTTP.AdminMiddleware(uploadHandler.ServeUpload)).Methods("POST")

	uploadsDir := getEnv("UPLOAD_DIR", "content/uploads")
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	router.Handle("/metrics", promhttp.Handler())
	catalogHTTP.RegisterSwaggerDocs(router, httpSwagger.Handler())

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		w.Write([]byte(`{"status":"healthy"}`))
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{getEnv("CORS_ORIGIN", "*")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := otelhttp.NewHandler(c.Handler(router), "storefront-http")

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + httpPort,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Logger.Info().Str("port", httpPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Error during shutdown")
	}
	logger.Logger.Info().Msg("Server stopped")
}

// newUploadStorage selects the image backend once at startup.
func newUploadStorage() upload.Storage {
	backend := getEnv("UPLOAD_BACKEND", "filesystem")
	switch backend {
	case "inline":
		return upload.NewInlineStorage()
	case "imgbb":
		return upload.NewImgBBStorage(os.Getenv("IMGBB_API_KEY"))
	default:
		return upload.NewFilesystemStorage(getEnv("UPLOAD_DIR", "content/uploads"), "/uploads")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
