package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// KVEntry is the row layout of the sqlite backend.
type KVEntry struct {
	Key       string `gorm:"column:kv_key;primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// SQLite stores keys in a single table through gorm.
type SQLite struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database at path and migrates the schema.
// A DSN starting with "file:" is passed through unchanged, which lets tests
// use shared in-memory databases.
func OpenSQLite(path string) (*SQLite, error) {
	const op = "Open"

	if path == "" {
		return nil, wrap(op, "", errors.New("sqlite store path is empty"))
	}
	if !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, wrap(op, "", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, wrap(op, "", err)
	}
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, wrap(op, "", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Load(ctx context.Context, key string) ([]byte, error) {
	var row KVEntry
	err := s.db.WithContext(ctx).Where("kv_key = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("Load", key, err)
	}
	return []byte(row.Value), nil
}

func (s *SQLite) Save(ctx context.Context, entries ...Entry) error {
	if len(entries) == 0 {
		return nil
	}
	now := time.Now().UTC()
	entries = dedupe(entries)
	rows := make([]KVEntry, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, KVEntry{Key: e.Key, Value: string(e.Value), UpdatedAt: now})
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kv_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rows).Error
	})
	return wrap("Save", "", err)
}

func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return wrap("Close", "", err)
	}
	return wrap("Close", "", sqlDB.Close())
}
