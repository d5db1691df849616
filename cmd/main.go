package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-accounts/internal/events"
	"github.com/sbilibin2017/gw-accounts/internal/handlers"
	"github.com/sbilibin2017/gw-accounts/internal/jwt"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-accounts/internal/migrations"
	"github.com/sbilibin2017/gw-accounts/internal/render"
	"github.com/sbilibin2017/gw-accounts/internal/repositories"
	"github.com/sbilibin2017/gw-accounts/internal/services"
	"github.com/sbilibin2017/gw-accounts/internal/sessions"
	"github.com/sbilibin2017/gw-accounts/internal/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns,
		kafkaBrokers, kafkaTopic,
		s3Endpoint, s3Region, s3Bucket, s3AccessKey, s3SecretKey,
		jwtSecret, sessionExpSecond,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns,
		kafkaBrokers, kafkaTopic,
		s3Endpoint, s3Region, s3Bucket, s3AccessKey, s3SecretKey,
		jwtSecret, sessionExpSecond,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, database, Redis, Kafka, S3, and session configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns int,
	kafkaBrokers, kafkaTopic string,
	s3Endpoint, s3Region, s3Bucket, s3AccessKey, s3SecretKey string,
	jwtSecretKey string, sessionExpSecond int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "database")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	redisHost = getEnv("REDIS_HOST", "localhost")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if redisPoolSize, err = strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return
	}
	if redisMinIdleConns, err = strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return
	}

	// Kafka config
	kafkaBrokers = getEnv("KAFKA_BROKERS", "localhost:9092")
	kafkaTopic = getEnv("KAFKA_TOPIC", "account-events")

	// S3 config
	s3Endpoint = getEnv("S3_ENDPOINT", "")
	s3Region = getEnv("S3_REGION", "us-east-1")
	s3Bucket = getEnv("S3_BUCKET", "gw-accounts")
	s3AccessKey = getEnv("S3_ACCESS_KEY", "")
	s3SecretKey = getEnv("S3_SECRET_KEY", "")

	// Session config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if sessionExpSecond, err = strconv.Atoi(getEnv("SESSION_EXP_SECOND", "1209600")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Redis, Kafka, S3, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns int,
	kafkaBrokers, kafkaTopic string,
	s3Endpoint, s3Region, s3Bucket, s3AccessKey, s3SecretKey string,
	jwtSecretKey string, sessionExpSecond int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d", pgHost, pgPort)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Errorw("PostgreSQL connection error", "error", err)
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Errorw("PostgreSQL ping failed", "error", err)
		return err
	}

	// Apply migrations
	if err := migrations.Run(ctx, db.DB); err != nil {
		logger.Log.Errorw("migrations failed", "error", err)
		return err
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", redisHost, redisPort),
		Password:     redisPassword,
		DB:           redisDB,
		PoolSize:     redisPoolSize,
		MinIdleConns: redisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Errorw("Redis connection error", "error", err)
		return err
	}
	defer rdb.Close()

	// Kafka writer for registration events
	kafkaWriter := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(kafkaBrokers, ",")...),
		Topic:    kafkaTopic,
		Balancer: &kafka.LeastBytes{},
	}
	defer kafkaWriter.Close()

	// S3 storage for profile pictures
	pictureStore, err := storage.New(ctx, s3Endpoint, s3Region, s3Bucket, s3AccessKey, s3SecretKey)
	if err != nil {
		logger.Log.Errorw("S3 client error", "error", err)
		return err
	}

	// Initialize session manager
	sessionExp := time.Duration(sessionExpSecond) * time.Second
	tokens := jwt.New(jwtSecretKey, sessionExp)
	sessionManager := sessions.NewManager(rdb, tokens, sessionExp, sessions.DefaultCookieName)

	// Initialize repositories
	accountReadRepo := repositories.NewAccountReadRepository(db)
	accountWriteRepo := repositories.NewAccountWriteRepository(db)

	// Initialize services
	publisher := events.NewPublisher(kafkaWriter)
	accountService := services.NewAccountService(accountReadRepo, accountWriteRepo, pictureStore, publisher)

	// Initialize renderer and handlers
	views, err := render.New()
	if err != nil {
		logger.Log.Errorw("template parse error", "error", err)
		return err
	}

	registerHandler := handlers.NewRegisterHandler(accountService, sessionManager, views)
	loginHandler := handlers.NewLoginHandler(accountService, sessionManager, views)
	profileHandler := handlers.NewProfileHandler(accountService, views)
	logoutHandler := handlers.NewLogoutHandler(sessionManager)
	mediaHandler := handlers.NewMediaHandler(pictureStore)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	// Public routes
	r.Get("/register", registerHandler)
	r.Post("/register", registerHandler)
	r.Get("/login", loginHandler)
	r.Post("/login", loginHandler)
	r.Get("/logout", logoutHandler)
	r.Get("/media/*", mediaHandler)

	// Protected routes behind the session guard
	r.Group(func(r chi.Router) {
		r.Use(middlewares.SessionAuthMiddleware(sessionManager))
		r.Get("/profile", profileHandler)
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
