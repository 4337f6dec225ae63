package models

import (
	"time"

	"gorm.io/datatypes"
)

// FieldSetting stores one owner's vocabulary and default value for a single
// form field. One row exists per (owner, field); free-input fields only get a
// row once a default is stored for them, with an empty option list.
type FieldSetting struct {
	ID    uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Owner string `gorm:"type:varchar(120);not null;uniqueIndex:idx_field_settings_owner_field" json:"owner"`
	Field Field  `gorm:"type:varchar(32);not null;uniqueIndex:idx_field_settings_owner_field" json:"field"`

	// Options is the selectable vocabulary (JSON string array).
	Options datatypes.JSON `gorm:"type:jsonb;not null" json:"options"`

	// Default is the value pre-filled into the entry form: a JSON string for
	// single-value fields, a JSON array for multi-select fields, SQL NULL when
	// no default is set.
	Default datatypes.JSON `gorm:"column:default_value;type:jsonb" json:"default,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`
}

func (FieldSetting) TableName() string {
	return "field_settings"
}
