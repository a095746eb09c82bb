package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GhostBC/SistemaLogistica/cmd"
	"github.com/GhostBC/SistemaLogistica/internal/adapters/out/postgres/auditrepo"
	"github.com/GhostBC/SistemaLogistica/internal/adapters/out/postgres/costrecordrepo"
	"github.com/GhostBC/SistemaLogistica/internal/adapters/out/postgres/orderrepo"
	"github.com/GhostBC/SistemaLogistica/internal/adapters/out/postgres/packagetyperepo"
	"github.com/GhostBC/SistemaLogistica/internal/adapters/out/postgres/syncstaterepo"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	configs := getConfigs(logger)

	db, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, db, logger)

	jobManager := app.NewJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("background jobs failed to start: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Warn("no .env file found, relying on the environment")
	}

	return cmd.Config{
		HTTPPort:   os.Getenv("HTTP_PORT"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  os.Getenv("DB_SSLMODE"),

		BlingAPIBase:     os.Getenv("BLING_API_BASE"),
		BlingAccessToken: os.Getenv("BLING_ACCESS_TOKEN"),

		MandaeAPIBase:       os.Getenv("MANDAE_API_BASE"),
		MandaeAPIToken:      os.Getenv("MANDAE_API_TOKEN"),
		MandaeWebhookSecret: os.Getenv("MANDAE_WEBHOOK_SECRET"),
	}
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&packagetyperepo.PackageTypeDTO{},
		&costrecordrepo.CostRecordDTO{},
		&auditrepo.AuditEntryDTO{},
		&syncstaterepo.SyncStateDTO{},
		&syncstaterepo.SystemSettingDTO{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	app.NewHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
