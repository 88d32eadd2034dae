package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"grocery/cmd"
	inhttp "grocery/internal/adapters/in/http"
	"grocery/internal/adapters/out/postgres/eventrepo"
	"grocery/internal/adapters/out/postgres/orderrepo"
	"grocery/internal/adapters/out/postgres/otprepo"
	"grocery/internal/adapters/out/postgres/partnerrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	config := getConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	gormDB, err := openDB(config)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&otprepo.PickupOtpDTO{},
		&partnerrepo.DeliveryPartnerDTO{},
		&eventrepo.OrderEventDTO{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	root := cmd.NewCompositionRoot(config, gormDB, logger)

	server := inhttp.NewServer(
		must(root.CreatePlaceOrderCommandHandler()),
		must(root.CreateTransitionOrderCommandHandler()),
		must(root.CreateClaimOrderCommandHandler()),
		must(root.CreateGeneratePickupOtpCommandHandler()),
		must(root.CreateVerifyPickupOtpCommandHandler()),
		must(root.CreateSetPartnerAvailabilityCommandHandler()),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetUnassignedOrdersQueryHandler(),
		root.CreateGetStoreOrdersQueryHandler(),
	)

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)))
}

func getConfig() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file found, reading configuration from environment")
	}

	return cmd.Config{
		HTTPPort:          envOrDefault("HTTP_PORT", "8080"),
		DBHost:            envOrDefault("DB_HOST", "localhost"),
		DBPort:            envOrDefault("DB_PORT", "5432"),
		DBUser:            envOrDefault("DB_USER", "postgres"),
		DBPassword:        envOrDefault("DB_PASSWORD", "postgres"),
		DBName:            envOrDefault("DB_NAME", "grocery"),
		DBSslMode:         envOrDefault("DB_SSLMODE", "disable"),
		PickupOtpRequired: envBool("PICKUP_OTP_REQUIRED", true),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Fatalf("Invalid boolean for %s: %q", key, value)
	}
	return parsed
}

func openDB(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode,
	)
	return gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
}

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatalf("Failed to wire handlers: %v", err)
	}
	return v
}
