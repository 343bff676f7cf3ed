package infra

import (
	"sync"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"gorm.io/gorm"

	postgres_wrapper "github.com/Milo-Goodfellow-Work/matchbook/pkg/infra/postgres"
)

// IMigrateTool migrates the trade store schema.
type IMigrateTool interface {
	// Migrate runs every pending migration from source against connStr.
	Migrate(source string, connStr string)

	// ConnectAndMigrate connects with backoff, migrates, and hands the
	// connection back. Used by binaries that must not start on a stale
	// schema.
	ConnectAndMigrate(cfg *postgres_wrapper.PostgresConfig) *gorm.DB
}

type migrateTool struct{}

var once sync.Once         // nolint
var mutex = &sync.Mutex{}  // nolint
var singleton IMigrateTool // nolint

// GetMigrateTool get singleton instance for migrate tool
func GetMigrateTool() IMigrateTool { // nolint
	once.Do(func() {
		singleton = &migrateTool{}
	})
	return singleton
}

// Migrate executes migrations serially. A dirty version is forced back one
// step before retrying.
func (mt *migrateTool) Migrate(source string, connStr string) {
	mutex.Lock()
	defer mutex.Unlock()

	zap.S().Info("migrating...")

	mg, err := migrate.New(source, connStr)
	if err != nil {
		zap.S().Errorf("create new migration fail with err: %v", err)
		panic(err)
	}
	defer mg.Close()

	version, dirty, err := mg.Version()
	if err != nil && err != migrate.ErrNilVersion {
		panic(err)
	}
	if dirty {
		mg.Force(int(version) - 1) // nolint
	}

	err = mg.Up()
	if err != nil && err != migrate.ErrNoChange {
		panic(err)
	}

	zap.S().Info("migration done")
}

func (mt *migrateTool) ConnectAndMigrate(cfg *postgres_wrapper.PostgresConfig) *gorm.DB {
	db := postgres_wrapper.InitPostgresWithBackoff(cfg)
	mt.Migrate(cfg.MigrationSourceURL, cfg.MigrationConnURL)
	return db
}
