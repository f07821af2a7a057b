package main

import (
	"fmt"
	"net/http"
	"os"

	"goby/cmd"
	httpadapter "goby/internal/adapters/in/http"
	"goby/internal/adapters/out/postgres/creditsrepo"
	"goby/internal/adapters/out/postgres/deliveryrepo"
	"goby/internal/adapters/out/postgres/orderrepo"
	"goby/internal/jobs"

	"log/slog"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := openDatabase(configs)
	migrateDatabase(gormDB)

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
	)

	jobManager := jobs.NewJobManager(
		app.LocationRecorder(),
		app.CreateLocationHistoryWriter(),
		slog.Default(),
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:        goDotEnvVariable("HTTP_PORT"),
		DBHost:          goDotEnvVariable("DB_HOST"),
		DBPort:          goDotEnvVariable("DB_PORT"),
		DBUser:          goDotEnvVariable("DB_USER"),
		DBPassword:      goDotEnvVariable("DB_PASSWORD"),
		DBName:          goDotEnvVariable("DB_NAME"),
		DBSslMode:       goDotEnvVariable("DB_SSLMODE"),
		StartingCredits: goDotEnvVariable("STARTING_CREDITS"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError turns driver unique violations into gorm.ErrDuplicatedKey,
	// which the repositories rely on for conflict detection.
	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func migrateDatabase(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.LocationHistoryDTO{},
		&creditsrepo.CreditsDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func startingCredits(configs cmd.Config) decimal.Decimal {
	if configs.StartingCredits == "" {
		return decimal.Zero
	}

	amount, err := decimal.NewFromString(configs.StartingCredits)
	if err != nil {
		log.Fatalf("Error parsing STARTING_CREDITS: %v", err)
	}
	return amount
}

func startWebServer(app cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreateTakeOrderCommandHandler(),
		app.CreateArriveAtRestaurantCommandHandler(),
		app.CreateMarkDeliveredCommandHandler(),
		app.CreateUpdateLocationCommandHandler(),
		app.CreateBuyCreditsCommandHandler(),
		app.CreateAdjustCreditsCommandHandler(),
		app.CreateEnsureBalanceCommandHandler(),
		app.CreateGetDeliveryQueryHandler(),
		app.CreateGetDeliveryLocationQueryHandler(),
		app.CreateGetCreditsBalanceQueryHandler(),
		startingCredits(configs),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
