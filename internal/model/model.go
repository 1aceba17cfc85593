// Package model holds the gorm table definitions and the migration
// entry point. Mapping to domain entities happens here so the rest of
// the service never touches gorm types.
package model

import (
	"gorm.io/gorm"
)

// MigrateDB creates or updates all tables.
func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&Note{},
		&User{},
		&Notification{},
	)
}
