package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sarvcast/sarvcast-backend/models"
)

var DB *gorm.DB

func InitDB() {
	db, err := gorm.Open(postgres.Open(dsnFromEnv()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatal("cannot connect to database: ", err)
	}

	DB = db

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("cannot get sql.DB from gorm: ", err)
	}

	// Connection pooling
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	err = DB.AutoMigrate(
		&models.User{},
		&models.Story{},
		&models.Category{},
		&models.Tag{},
		&models.Episode{},
		&models.Person{},
		&models.Character{},
		&models.ImageTimeline{},
		&models.EpisodeVoiceActor{},
		&models.Favorite{},
		&models.Rating{},
		&models.PlayHistory{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatal("autoMigrate failed: ", err)
	}
	log.Println("postgreSQL connected & migrated successfully!")
}

// ConnectDatabase returns a DB instance (used by migration tooling).
func ConnectDatabase() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsnFromEnv()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func dsnFromEnv() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Tehran",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
}
