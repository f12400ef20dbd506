package repository

import (
	"fmt"

	"github.com/triptrizz/triptrizz-server/internal/config"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	*gorm.DB
}

func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	dsn := cfg.DSN()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	return &Database{db}, nil
}

func (db *Database) AutoMigrate() error {
	return db.DB.AutoMigrate(AllModels()...)
}

// AllModels is shared with the sqlite test harness.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.VerificationRequest{},
		&models.FollowRelationship{},
		&models.Block{},
		&models.Match{},
		&models.Conversation{},
		&models.Message{},
		&models.Trip{},
		&models.Itinerary{},
		&models.Like{},
		&models.ActivityEvent{},
		&models.Post{},
		&models.Vote{},
		&models.Comment{},
	}
}

func (db *Database) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
