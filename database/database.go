package database

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Alchinkaz/dream-rent-crm-new/config"
)

var DB *gorm.DB

// InitDB initializes the database connection using environment/config
func InitDB() error {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch config.AppConfig.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			config.AppConfig.DBHost,
			config.AppConfig.DBPort,
			config.AppConfig.DBUser,
			config.AppConfig.DBPassword,
			config.AppConfig.DBName,
		)

		zap.L().Info("connecting to PostgreSQL",
			zap.String("host", config.AppConfig.DBHost),
			zap.String("port", config.AppConfig.DBPort),
			zap.String("db", config.AppConfig.DBName),
		)

		var err error
		DB, err = gorm.Open(postgres.Open(dsn), gormConfig)
		if err != nil {
			return fmt.Errorf("postgres connect: %w", err)
		}

	case "sqlite", "sqlite3":
		dbDir := filepath.Dir(config.AppConfig.DBPath)
		if err := os.MkdirAll(dbDir, os.ModePerm); err != nil {
			return fmt.Errorf("create sqlite dir: %w", err)
		}

		var err error
		DB, err = gorm.Open(sqlite.Open(config.AppConfig.DBPath), gormConfig)
		if err != nil {
			return fmt.Errorf("sqlite connect: %w", err)
		}

		zap.L().Info("connected to SQLite", zap.String("path", config.AppConfig.DBPath))

	default:
		return fmt.Errorf("unsupported DB driver: %s", config.AppConfig.DBDriver)
	}

	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
