package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wingmate/wingmate/internal/model"
)

// Manager handles the snapshot archive connection.
type Manager struct {
	DB             *gorm.DB
	IsValid        bool
	SqliteFilePath string
	Logger         zerolog.Logger
}

// NewManager creates a new database manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		IsValid: false,
		Logger:  log,
	}
}

// Connect opens the SQLite database at path.
func (m *Manager) Connect(path string) error {
	db, err := m.GetSqliteDB(path)
	if err != nil || db == nil {
		m.IsValid = false
		return fmt.Errorf("failed to get local SQLite DB: %w", err)
	}
	m.DB = db
	m.SqliteFilePath = path
	m.IsValid = true
	return nil
}

// GetSqliteDB returns a connection to a SQLite database.
// If path is empty, uses an in-memory database.
func (m *Manager) GetSqliteDB(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if path != "" {
		m.Logger.Info().Str("path", path).Msg("Using local SQLite DB")
	} else {
		m.Logger.Info().Msg("Using local SQLite DB in memory")
		// each pooled connection would get its own empty in-memory database
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	// set PRAGMAS
	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA temp_store = MEMORY;",
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	return db, nil
}

// Setup migrates the snapshot tables.
func (m *Manager) Setup() error {
	if m.DB == nil {
		return fmt.Errorf("database not connected")
	}
	m.Logger.Info().Msg("Migrating schema")
	if err := m.DB.AutoMigrate(model.DatabaseModels...); err != nil {
		m.IsValid = false
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (m *Manager) Close() error {
	if m.DB == nil {
		return nil
	}
	sqlDB, err := m.DB.DB()
	if err != nil {
		return err
	}
	m.IsValid = false
	return sqlDB.Close()
}
