package database

import (
	"fmt"
	"log"
	"time"

	"pos-backend/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect() {
	cfg := config.AppConfig.Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		path := cfg.Name
		if path == "" {
			path = "pos.db"
		}
		dialector = sqlite.Open(path)
	default:
		var dsn string
		// Prioritize DATABASE_URL if provided (common on managed platforms)
		if cfg.URL != "" {
			log.Println("Using DATABASE_URL for connection")
			dsn = cfg.URL
		} else {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
		}
		dialector = mysql.Open(dsn)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Duplicate-key and not-found handling relies on gorm's
		// translated errors.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Connection pooling configuration
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection established successfully")
}
