package database

import (
	"fmt"
	"log"

	"student-registry/config"
	"student-registry/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitGormDB подключается к PostgreSQL через GORM и применяет миграцию
func InitGormDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := Migrate(db); err != nil {
		closeGorm(db)
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	log.Println("✅ Successfully connected to PostgreSQL via GORM!")
	return db, nil
}

// closeGorm закрывает пул, на котором работает GORM
func closeGorm(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("⚠️ Error getting connection pool: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("⚠️ Error closing connection pool: %v", err)
	}
}

func Migrate(db *gorm.DB) error {
	log.Println("🔄 Starting database migration...")

	if err := db.AutoMigrate(&models.Student{}); err != nil {
		log.Printf("❌ Error migrating table %T: %v", models.Student{}, err)
		return err
	}
	log.Printf("✅ Created/Updated table for: %T", models.Student{})

	log.Println("✅ Database migration completed successfully!")
	return nil
}

// ResetGorm - то же, что Reset, для подключения через GORM
func ResetGorm(db *gorm.DB) error {
	log.Println("🗑️ Resetting students table...")

	if err := db.Exec("TRUNCATE TABLE students RESTART IDENTITY").Error; err != nil {
		return fmt.Errorf("error resetting students table: %w", err)
	}

	log.Println("✅ Students table reset")
	return nil
}
