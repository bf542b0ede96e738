package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	Port        string
	DBDriver    string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
	RabbitMQURL string
	PushQueue   string
}

// LoadConfig reads the environment (godotenv is loaded by main before
// this runs) and fills in development defaults.
func LoadConfig() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DBDriver:    getEnv("DB_DRIVER", "mysql"),
		DBUser:      getEnv("DB_USER", "root"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBHost:      getEnv("DB_HOST", "127.0.0.1"),
		DBPort:      getEnv("DB_PORT", "3306"),
		DBName:      getEnv("DB_NAME", "table_factory"),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),
		PushQueue:   getEnv("PUSH_QUEUE", "order_push_notifications"),
	}
}

// InitDB opens the configured database. DB_DRIVER=sqlite uses a local
// file (or :memory:) and is what the test suite relies on.
func InitDB(cfg *Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return gorm.Open(sqlite.Open(getEnv("DB_PATH", "table_factory.db")), &gorm.Config{})
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
