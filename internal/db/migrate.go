package db

import (
	"tradejournal/internal/models"
)

// AutoMigrate creates or alters the journal schema: entries, per-owner field
// settings, and the global custom-column registry.
func (d *DB) AutoMigrate() error {
	if d == nil || d.Gorm == nil {
		return nil
	}
	return d.Gorm.AutoMigrate(
		&models.JournalEntry{},
		&models.FieldSetting{},
		&models.CustomColumn{},
	)
}
