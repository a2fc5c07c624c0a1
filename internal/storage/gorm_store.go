package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gestorcrm/quotes-api/internal/config"
)

// KVRecord is the single table backing the store: one row per collection.
type KVRecord struct {
	Key       string    `gorm:"primaryKey;size:64"`
	Value     string    `gorm:"type:text"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides the GORM default
func (KVRecord) TableName() string {
	return "kv_records"
}

// GormStore implements Store over sqlite or postgres through GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the configured database, applies pool settings and
// migrates the kv_records table.
func NewGormStore(cfg *config.Config) (*GormStore, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetimeMinutes) * time.Minute)

	if err := db.AutoMigrate(&KVRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_records: %w", err)
	}

	return &GormStore{db: db}, nil
}

// Get returns the serialized collection under key, or (nil, nil) when the
// key has never been written.
func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec KVRecord
	err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return []byte(rec.Value), nil
}

// Set replaces the serialized collection under key.
func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	rec := KVRecord{Key: key, Value: string(value)}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
