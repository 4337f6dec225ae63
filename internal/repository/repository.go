package repository

import (
	"context"

	"gorm.io/gorm"

	"tradejournal/internal/models"
)

// ListEntriesParams filters and orders one owner's journal entries. Owner is
// mandatory; a query with an empty owner matches nothing.
type ListEntriesParams struct {
	Owner     string
	Pair      *string
	Session   *string
	Outcome   *string
	Direction *string
	Limit     int
	Offset    int
	OrderBy   string
	Asc       *bool
}

// Repository is the persistence surface used by services and handlers.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Journal entries (per-owner).
	InsertEntry(ctx context.Context, item *models.JournalEntry) error
	SaveEntry(ctx context.Context, item *models.JournalEntry) error
	GetEntryByID(ctx context.Context, owner string, id uint64) (*models.JournalEntry, error)
	ListEntries(ctx context.Context, params ListEntriesParams) ([]models.JournalEntry, error)
	CountEntries(ctx context.Context, params ListEntriesParams) (int64, error)
	UpdateEntryCustomData(ctx context.Context, owner string, id uint64, data []byte) (int64, error)
	DeleteEntry(ctx context.Context, owner string, id uint64) (int64, error)
	DeleteEntriesByOwner(ctx context.Context, owner string) (int64, error)

	// Field settings (per owner+field).
	GetFieldSetting(ctx context.Context, owner string, field models.Field) (*models.FieldSetting, error)
	UpsertFieldSetting(ctx context.Context, item *models.FieldSetting) error
	UpdateFieldOptions(ctx context.Context, owner string, field models.Field, options []byte) error
	SetFieldDefault(ctx context.Context, owner string, field models.Field, value []byte) error

	// Custom columns (global).
	InsertCustomColumn(ctx context.Context, item *models.CustomColumn) error
	GetCustomColumnByName(ctx context.Context, name string) (*models.CustomColumn, error)
	ListCustomColumns(ctx context.Context) ([]models.CustomColumn, error)
	DeleteCustomColumn(ctx context.Context, id uint64) (int64, error)
}
