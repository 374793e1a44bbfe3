package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hotelcore/store"
)

func dbConfigByEnv(env string) DBConfig {
	prefix := strings.ToUpper(env) + "_DB_"
	switch env {
	case "dev", "qc", "prod":
	default:
		log.Printf("Unknown environment: %s, dùng DEV_DB_*", env)
		prefix = "DEV_DB_"
	}
	sslMode := "require"
	if env == "dev" {
		sslMode = getEnvDefault("DEV_DB_SSLMODE", "disable")
	}
	return DBConfig{
		User:     os.Getenv(prefix + "USER"),
		Password: os.Getenv(prefix + "PASSWORD"),
		Host:     os.Getenv(prefix + "HOST"),
		Port:     getEnvDefault(prefix+"PORT", "5432"),
		Name:     os.Getenv(prefix + "NAME"),
		SSLMode:  sslMode,
	}
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=Asia/Ho_Chi_Minh",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

// ConnectDB mở kết nối postgres, thử lại tối đa 5 lần rồi auto-migrate các bảng.
func ConnectDB(cfg AppConfig) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	for attempt := 1; attempt <= 5; attempt++ {
		db, err = gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			break
		}
		log.Printf("Fail to connect to db (lần %d): %v", attempt, err)
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := db.AutoMigrate(store.Models()...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Println("Successfully connected to db")
	return db, nil
}
