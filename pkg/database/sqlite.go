package database

import (
	"fmt"
	"os"
	"path/filepath"

	"medicsense-client/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewLocalDB opens (creating if needed) the client's embedded store under
// dataDir and migrates the schema. The store plays the role browser
// localStorage does for the web client: it must survive restarts and is only
// reset by wiping the directory.
func NewLocalDB(dataDir string) (*gorm.DB, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dsn := filepath.Join(dataDir, "medicsense.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Setting{},
		&model.TranscriptEntry{},
		&model.Appointment{},
		&model.SymptomLogEntry{},
		&model.VitalsLogEntry{},
	); err != nil {
		return nil, fmt.Errorf("migrate local store: %w", err)
	}

	return db, nil
}
