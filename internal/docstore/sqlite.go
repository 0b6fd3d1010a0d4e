package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Document is one stored document: its hierarchical path plus the field
// map serialized in the same tagged JSON encoding the REST backend uses.
type Document struct {
	Path      string `gorm:"primaryKey"`
	Fields    []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// SQLiteStore is the embedded backend. It powers local mode and the test
// suite, and additionally supports prefix listing.
type SQLiteStore struct {
	database *gorm.DB
}

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := database.AutoMigrate(&Document{}); err != nil {
		return nil, fmt.Errorf("migrate documents table: %w", err)
	}

	return &SQLiteStore{database: database}, nil
}

func (store *SQLiteStore) Get(ctx context.Context, path string) (Fields, error) {
	var document Document
	err := store.database.WithContext(ctx).First(&document, "path = ?", path).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeStoredFields(document)
}

func (store *SQLiteStore) Create(ctx context.Context, path string, fields Fields) error {
	encoded, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("docstore: encode document %s: %w", path, err)
	}
	return store.database.WithContext(ctx).Save(&Document{Path: path, Fields: encoded}).Error
}

// Patch merges the masked fields into the stored document inside a
// transaction. Mirrors the REST update-mask semantics: only masked names
// are touched, a masked name absent from fields is deleted.
func (store *SQLiteStore) Patch(ctx context.Context, path string, fields Fields, mask []string) error {
	return store.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current := Fields{}

		var document Document
		err := tx.First(&document, "path = ?", path).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			current, err = decodeStoredFields(document)
			if err != nil {
				return err
			}
		}

		if len(mask) == 0 {
			current = fields
		} else {
			for _, name := range mask {
				if value, ok := fields[name]; ok {
					current[name] = value
				} else {
					delete(current, name)
				}
			}
		}

		encoded, err := json.Marshal(current)
		if err != nil {
			return fmt.Errorf("docstore: encode document %s: %w", path, err)
		}
		return tx.Save(&Document{Path: path, Fields: encoded}).Error
	})
}

func (store *SQLiteStore) ListPaths(ctx context.Context, prefix string) ([]string, error) {
	paths := make([]string, 0)
	err := store.database.WithContext(ctx).
		Model(&Document{}).
		Where("path LIKE ?", prefix+"%").
		Order("path").
		Pluck("path", &paths).Error
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func decodeStoredFields(document Document) (Fields, error) {
	fields := Fields{}
	if len(document.Fields) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(document.Fields, &fields); err != nil {
		return nil, fmt.Errorf("docstore: decode document %s: %w", document.Path, err)
	}
	return fields, nil
}
