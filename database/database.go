package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"serviceconnect-server/config"
	"serviceconnect-server/models"
)

var (
	// DB is the gorm handle used by the ORM data-access variant.
	DB *gorm.DB
	// SQLX is the sqlx handle used by the raw-SQL variant. Both share the
	// same underlying pool settings.
	SQLX *sqlx.DB
)

// Initialize sets up both database handles and runs migrations.
func Initialize() error {
	connString := config.AppConfig.Database.DSN()

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	var err error
	DB, err = gorm.Open(postgres.Open(connString), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Successfully connected to database")

	if err := runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("✅ Database migrations completed successfully")

	SQLX, err = sqlx.Connect("postgres", connString)
	if err != nil {
		return fmt.Errorf("failed to open sqlx connection: %w", err)
	}
	SQLX.SetMaxIdleConns(10)
	SQLX.SetMaxOpenConns(100)
	SQLX.SetConnMaxLifetime(time.Hour)

	return nil
}

// runMigrations creates or updates database tables
func runMigrations() error {
	return DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Worker{},
		&models.WorkerSkill{},
		&models.ServiceCategory{},
		&models.Job{},
		&models.JobAttachment{},
		&models.Bid{},
		&models.Booking{},
		&models.Review{},
		&models.Notification{},
	)
}

// Close releases both connection handles.
func Close() {
	if SQLX != nil {
		if err := SQLX.Close(); err != nil {
			log.Printf("⚠️ Failed to close sqlx connection: %v", err)
		}
	}
	if DB != nil {
		if sqlDB, err := DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("⚠️ Failed to close database connection: %v", err)
			}
		}
	}
}

func GetDB() *gorm.DB {
	return DB
}
