package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tablefactory/order-app/config"
	"github.com/tablefactory/order-app/models"
	"github.com/tablefactory/order-app/mq"
	"github.com/tablefactory/order-app/router"
	"github.com/tablefactory/order-app/services"
	"github.com/tablefactory/order-app/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InfoLogger = logrus.New()
	utils.ErrorLogger = logrus.New()

	utils.InfoLogger.SetOutput(os.Stdout)
	utils.ErrorLogger.SetOutput(os.Stderr)

	utils.InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})
	utils.ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})
}

func main() {
	cfg := config.LoadConfig()

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Push notifications degrade to no-op without a broker.
	var publisher *mq.Publisher
	if cfg.RabbitMQURL != "" {
		publisher, err = mq.NewPublisher(cfg.RabbitMQURL, cfg.PushQueue)
		if err != nil {
			utils.ErrorLogger.Printf("RabbitMQ unavailable, push notifications disabled: %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	estimator := services.NewDeliveryEstimator(db)
	notifier := services.NewNotifier(db, publisher)

	monitor := services.NewQueueMonitor(db, estimator)
	monitor.Start()
	defer monitor.Stop()

	r := router.SetupRouter(db, estimator, notifier)

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.TableItem{},
		&models.Bill{},
		&models.Notification{},
		&models.StockItem{},
		&models.OrderEvent{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
