// database_utils should be the canonical place to put shared DB utils.
// It should not include:
// 1. Any util that doesn't manipulate DB
// 2. Any util that contains business logic
package utils

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AlazarStudio/kchr-tourism-backend/model"
)

// GetDBConnection opens a postgres connection for the given DSN. The DSN is
// built by config.Config so that no DB parameter is read from ambient env
// inside this package.
func GetDBConnection(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// DatabaseSetupAndMigration migrates all content tables. Safe to run on every
// startup.
func DatabaseSetupAndMigration(db *gorm.DB) error {
	return db.AutoMigrate(&model.News{}, &model.Story{})
}
