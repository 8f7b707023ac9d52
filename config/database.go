package config

import (
	"fmt"

	"coffee-shop-api/models"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the configured database and migrates the schema.
// Postgres is used when DATABASE_URL or DB_HOST is set; otherwise a local
// SQLite file keeps development self-contained.
func InitDB(s *Settings, log *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch {
	case s.DatabaseURL != "":
		db, err = gorm.Open(postgres.Open(s.DatabaseURL), gormCfg)
	case s.DBHost != "":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			s.DBHost, s.DBUser, s.DBPassword, s.DBName, s.DBPort,
		)
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
	default:
		log.Info("no postgres configured, using sqlite", zap.String("path", s.SQLitePath))
		db, err = gorm.Open(sqlite.Open(s.SQLitePath), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	log.Info("database connected and migrated")
	return db, nil
}

// Migrate applies the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.Favorite{},
	)
}
