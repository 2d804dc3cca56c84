package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/saborexpress/pkg/metrics"
)

// Slot is one row of the kv_slots table.
type Slot struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string
	UpdatedAt time.Time
}

func (Slot) TableName() string { return "kv_slots" }

// Database keeps slots in a SQL table through gorm.
type Database struct {
	db *gorm.DB
}

// NewDatabase migrates the kv_slots table and returns the driver.
func NewDatabase(db *gorm.DB) (*Database, error) {
	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, fmt.Errorf("kv: migrate kv_slots: %w", err)
	}
	return &Database{db: db}, nil
}

func (d *Database) Get(ctx context.Context, key string) ([]byte, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var s Slot
	err := d.db.WithContext(ctx).Where(&Slot{Key: key}).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.ObserveSlotMiss("database")
		return nil, ErrNotFound
	}
	metrics.ObserveSlot("database", "get", err)
	if err != nil {
		return nil, fmt.Errorf("kv: select %q: %w", key, err)
	}
	return []byte(s.Value), nil
}

func (d *Database) Set(ctx context.Context, key string, value []byte) error {
	defer metrics.ObserveDBQuery("upsert", time.Now())

	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&Slot{Key: key, Value: string(value), UpdatedAt: time.Now()}).Error
	metrics.ObserveSlot("database", "set", err)
	if err != nil {
		return fmt.Errorf("kv: upsert %q: %w", key, err)
	}
	return nil
}

func (d *Database) Remove(ctx context.Context, key string) error {
	defer metrics.ObserveDBQuery("delete", time.Now())

	err := d.db.WithContext(ctx).Where(&Slot{Key: key}).Delete(&Slot{}).Error
	metrics.ObserveSlot("database", "remove", err)
	if err != nil {
		return fmt.Errorf("kv: delete %q: %w", key, err)
	}
	return nil
}
