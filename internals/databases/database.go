package database

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
)

// ConnectDB opens the postgres pool described by cfg.
func ConnectDB(cfg configs.Config) (*gorm.DB, error) {
	log.Println("[INFO] connecting to PostgreSQL...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), GormConfig(cfg.LogSQL))
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	if err := TunePool(db); err != nil {
		return nil, err
	}
	if err := Ping(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "ping postgres")
	}
	log.Println("[INFO] DB connected.")
	return db, nil
}

// GormConfig is shared by the postgres connection and the test harness.
func GormConfig(verbose bool) *gorm.Config {
	return &gorm.Config{
		Logger:                                   configs.NewGormLogger(verbose),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
	}
}

func TunePool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "pool tune")
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
