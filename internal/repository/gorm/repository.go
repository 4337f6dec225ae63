package gormrepository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- Journal entries --------------------------------------------------------

func (s *Store) InsertEntry(ctx context.Context, item *models.JournalEntry) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) SaveEntry(ctx context.Context, item *models.JournalEntry) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	// Save writes every column so cleared optional fields (rrRatio, chartUrl)
	// go back to NULL.
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) GetEntryByID(ctx context.Context, owner string, id uint64) (*models.JournalEntry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if strings.TrimSpace(owner) == "" || id == 0 {
		return nil, nil
	}
	var item models.JournalEntry
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		Where("owner = ?", owner).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func entriesQuery(db *gorm.DB, params repository.ListEntriesParams) *gorm.DB {
	query := db.Model(&models.JournalEntry{}).Where("owner = ?", params.Owner)
	if params.Pair != nil && strings.TrimSpace(*params.Pair) != "" {
		query = query.Where("pair = ?", strings.TrimSpace(*params.Pair))
	}
	if params.Session != nil && strings.TrimSpace(*params.Session) != "" {
		query = query.Where("session = ?", strings.TrimSpace(*params.Session))
	}
	if params.Outcome != nil && strings.TrimSpace(*params.Outcome) != "" {
		query = query.Where("outcome = ?", strings.TrimSpace(*params.Outcome))
	}
	if params.Direction != nil && strings.TrimSpace(*params.Direction) != "" {
		query = query.Where("direction = ?", strings.TrimSpace(*params.Direction))
	}
	return query
}

func (s *Store) ListEntries(ctx context.Context, params repository.ListEntriesParams) ([]models.JournalEntry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if strings.TrimSpace(params.Owner) == "" {
		return nil, nil
	}
	query := entriesQuery(s.db.WithContext(ctx), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "trade_date")
	if params.Limit > 0 {
		query = query.Limit(normalizeLimit(params.Limit, 500)).Offset(normalizeOffset(params.Offset))
	}
	var items []models.JournalEntry
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountEntries(ctx context.Context, params repository.ListEntriesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	if strings.TrimSpace(params.Owner) == "" {
		return 0, nil
	}
	var total int64
	if err := entriesQuery(s.db.WithContext(ctx), params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) UpdateEntryCustomData(ctx context.Context, owner string, id uint64, data []byte) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.JournalEntry{}).
		Where("id = ?", id).
		Where("owner = ?", owner).
		Update("custom_data", data)
	return res.RowsAffected, res.Error
}

func (s *Store) DeleteEntry(ctx context.Context, owner string, id uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("id = ?", id).
		Where("owner = ?", owner).
		Delete(&models.JournalEntry{})
	return res.RowsAffected, res.Error
}

func (s *Store) DeleteEntriesByOwner(ctx context.Context, owner string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	if strings.TrimSpace(owner) == "" {
		return 0, nil
	}
	// One transaction so a failure removes nothing rather than a partial set.
	var deleted int64
	err := s.InTx(ctx, func(tx *gorm.DB) error {
		res := tx.Where("owner = ?", owner).Delete(&models.JournalEntry{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}

// --- Field settings ---------------------------------------------------------

func (s *Store) GetFieldSetting(ctx context.Context, owner string, field models.Field) (*models.FieldSetting, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.FieldSetting
	err := s.db.WithContext(ctx).
		Where("owner = ?", owner).
		Where("field = ?", field).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpsertFieldSetting(ctx context.Context, item *models.FieldSetting) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	// Concurrent first reads race on the seed write; last writer wins.
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner"}, {Name: "field"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"options",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) UpdateFieldOptions(ctx context.Context, owner string, field models.Field, options []byte) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.FieldSetting{}).
		Where("owner = ?", owner).
		Where("field = ?", field).
		Update("options", options).Error
}

func (s *Store) SetFieldDefault(ctx context.Context, owner string, field models.Field, value []byte) error {
	if s == nil || s.db == nil {
		return nil
	}
	var col any
	if value != nil {
		col = value
	}
	return s.db.WithContext(ctx).
		Model(&models.FieldSetting{}).
		Where("owner = ?", owner).
		Where("field = ?", field).
		Update("default_value", col).Error
}

// --- Custom columns ---------------------------------------------------------

func (s *Store) InsertCustomColumn(ctx context.Context, item *models.CustomColumn) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetCustomColumnByName(ctx context.Context, name string) (*models.CustomColumn, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.CustomColumn
	err := s.db.WithContext(ctx).
		Where("name = ?", name).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListCustomColumns(ctx context.Context) ([]models.CustomColumn, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.CustomColumn
	if err := s.db.WithContext(ctx).
		Model(&models.CustomColumn{}).
		Order("name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) DeleteCustomColumn(ctx context.Context, id uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.CustomColumn{})
	return res.RowsAffected, res.Error
}

// --- helpers ----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	col := fallback
	switch strings.TrimSpace(strings.ToLower(orderBy)) {
	case "date", "trade_date":
		col = "trade_date"
	case "created", "created_at":
		col = "created_at"
	}
	dir := "desc"
	if asc != nil && *asc {
		dir = "asc"
	}
	// id keeps the order total so pagination and the equity reducer see a
	// stable tie-break.
	return query.Order(col + " " + dir).Order("id " + dir)
}

func normalizeLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
