package models

import "time"

// CustomColumn is a global (not per-owner) extra field definition shown on the
// journal table. Deleting a definition does not purge customData values already
// stored under its name on existing entries.
type CustomColumn struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(80);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
}

func (CustomColumn) TableName() string {
	return "custom_columns"
}
