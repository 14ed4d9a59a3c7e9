package sqlite

import (
	"fmt"
	"log"
	"os"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"agenda/internal/domain/entity"
)

var (
	dbInstance *gorm.DB
	once       sync.Once
)

// NewDB initializes the GORM database connection using SQLite.
// It ensures that the connection is established only once (singleton pattern).
func NewDB() *gorm.DB {
	once.Do(func() {
		dbURL := os.Getenv("AGENDA_DB_URL")
		if dbURL == "" {
			dbURL = "agenda.db"
			log.Println("⚠️ WARN: AGENDA_DB_URL environment variable not set, defaulting to 'agenda.db'")
		}

		newLogger := gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		)

		db, err := gorm.Open(sqlite.Open(dbURL), &gorm.Config{
			Logger: newLogger,
		})
		if err != nil {
			log.Fatalf("🔴 ERROR: Failed to connect to database: %v", err)
		}

		log.Printf("Successfully connected to database: %s", dbURL)
		dbInstance = db

		if err := AutoMigrate(dbInstance); err != nil {
			log.Fatalf("🔴 ERROR: Failed to auto-migrate database schema: %v", err)
		}
		log.Println("Database schema migration completed.")
	})
	return dbInstance
}

// AutoMigrate automatically migrates the database schema for the defined entities.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Reminder{},
		&entity.Event{},
	)
	if err != nil {
		return fmt.Errorf("🔴 ERROR: schema migration failed: %w", err)
	}
	return nil
}

// CloseDB closes the database connection if it's open.
func CloseDB() error {
	if dbInstance != nil {
		sqlDB, err := dbInstance.DB()
		if err != nil {
			return fmt.Errorf("🔴 ERROR: failed to get underlying *sql.DB: %w", err)
		}
		log.Println("Closing database connection...")
		return sqlDB.Close()
	}
	return nil
}
