package storage

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one persisted key of one profile.
type Entry struct {
	Profile   string    `gorm:"primaryKey;size:64"`
	Key       string    `gorm:"column:entry_key;primaryKey;size:64"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Entry) TableName() string { return "kv_entries" }

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates the kv_entries table.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&Entry{})
}

func (s *GormStore) Get(ctx context.Context, profile, key string) ([]byte, error) {
	var e Entry
	// Find instead of First: a missing key is routine and must not be logged.
	res := s.db.WithContext(ctx).
		Where("profile = ? AND entry_key = ?", profile, key).
		Limit(1).Find(&e)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return e.Value, nil
}

func (s *GormStore) Set(ctx context.Context, profile, key string, value []byte) error {
	e := Entry{Profile: profile, Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile"}, {Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (s *GormStore) Delete(ctx context.Context, profile, key string) error {
	return s.db.WithContext(ctx).
		Where("profile = ? AND entry_key = ?", profile, key).
		Delete(&Entry{}).Error
}
