package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arun-kumar2004/TastyCart/internal/cache"
	h "github.com/arun-kumar2004/TastyCart/internal/http"
	"github.com/arun-kumar2004/TastyCart/internal/notifier"
	"github.com/arun-kumar2004/TastyCart/internal/otp"
	"github.com/arun-kumar2004/TastyCart/internal/repository"
	"github.com/arun-kumar2004/TastyCart/internal/service"
	"github.com/arun-kumar2004/TastyCart/internal/session"
)

type Config struct {
	HTTPPort        string
	RedisAddr       string
	KafkaBrokers    []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	DB              repository.Credentials
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		DB: repository.Credentials{
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              getEnvInt("DB_PORT", 5432),
			User:              getEnv("DB_USER", "tastycart"),
			Password:          getEnv("DB_PASSWORD", "tastycart"),
			DBName:            getEnv("DB_NAME", "tastycart"),
			MigrationsDirPath: getEnv("MIGRATIONS_DIR", "./migrations"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	repo, err := repository.NewRepository(&cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(&cfg.DB); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	kafkaNotifier := notifier.NewKafkaNotifier(cfg.KafkaBrokers...)
	defer kafkaNotifier.Close()

	menuCache := cache.NewRedisCache(redisClient)
	sessions := session.NewRedisStore(redisClient)
	cancelCodes := otp.NewRedisStore(redisClient)

	catalogService := service.NewCatalogService(repo, menuCache)
	cartService := service.NewCartService(repo, repo)
	checkoutService := service.NewCheckoutService(repo, repo, repo, sessions, kafkaNotifier)
	orderService := service.NewOrderService(repo, repo, cancelCodes, kafkaNotifier)

	router := h.NewRouter(h.RouterConfig{
		Users:          repo,
		Menu:           h.NewMenuHandler(catalogService),
		Cart:           h.NewCartHandler(cartService),
		Checkout:       h.NewCheckoutHandler(checkoutService),
		Orders:         h.NewOrdersHandler(orderService),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("TastyCart server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
