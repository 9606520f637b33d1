package utils

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestDBPrefix         = "testonlydb_"
	TestDBNameCharLength = 8
)

// CreateTempDB opens a uniquely named in-memory sqlite database with all
// content tables migrated. Each test gets its own database; the shared cache
// keeps it alive across the pooled connections gorm opens. Cleaned up
// automatically when the test finishes.
func CreateTempDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbName := TestDBPrefix + RandomAlphabetString(TestDBNameCharLength)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("cannot open temp DB %s: %v", dbName, err)
	}

	if err := DatabaseSetupAndMigration(db); err != nil {
		t.Fatalf("cannot migrate temp DB %s: %v", dbName, err)
	}

	t.Cleanup(func() {
		conn, err := db.DB()
		if err == nil {
			conn.Close()
		}
	})

	return db
}
