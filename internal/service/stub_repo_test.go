package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"gorm.io/gorm"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

// stubRepo is an in-memory repository.Repository for service tests.
type stubRepo struct {
	mu       sync.Mutex
	nextID   uint64
	entries  map[uint64]models.JournalEntry
	settings map[string]models.FieldSetting
	columns  map[uint64]models.CustomColumn

	failAll bool
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		nextID:   1,
		entries:  map[uint64]models.JournalEntry{},
		settings: map[string]models.FieldSetting{},
		columns:  map[uint64]models.CustomColumn{},
	}
}

var errStub = errors.New("stub repo failure")

func (r *stubRepo) settingKey(owner string, field models.Field) string {
	return owner + "|" + string(field)
}

func (r *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if r.failAll {
		return errStub
	}
	return fn(nil)
}

func (r *stubRepo) InsertEntry(ctx context.Context, item *models.JournalEntry) error {
	if r.failAll {
		return errStub
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = r.nextID
	r.nextID++
	r.entries[item.ID] = *item
	return nil
}

func (r *stubRepo) SaveEntry(ctx context.Context, item *models.JournalEntry) error {
	if r.failAll {
		return errStub
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[item.ID] = *item
	return nil
}

func (r *stubRepo) GetEntryByID(ctx context.Context, owner string, id uint64) (*models.JournalEntry, error) {
	if r.failAll {
		return nil, errStub
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.entries[id]
	if !ok || item.Owner != owner {
		return nil, nil
	}
	out := item
	return &out, nil
}

func (r *stubRepo) matches(item models.JournalEntry, params repository.ListEntriesParams) bool {
	if item.Owner != params.Owner {
		return false
	}
	if params.Pair != nil && item.Pair != *params.Pair {
		return false
	}
	if params.Session != nil && item.Session != *params.Session {
		return false
	}
	if params.Outcome != nil && item.Outcome != *params.Outcome {
		return false
	}
	if params.Direction != nil && item.Direction != *params.Direction {
		return false
	}
	return true
}

func (r *stubRepo) ListEntries(ctx context.Context, params repository.ListEntriesParams) ([]models.JournalEntry, error) {
	if r.failAll {
		return nil, errStub
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.JournalEntry
	for _, item := range r.entries {
		if r.matches(item, params) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRepo) CountEntries(ctx context.Context, params repository.ListEntriesParams) (int64, error) {
	items, err := r.ListEntries(ctx, params)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

func (r *stubRepo) UpdateEntryCustomData(ctx context.Context, owner string, id uint64, data []byte) (int64, error) {
	if r.failAll {
		return 0, errStub
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.entries[id]
	if !ok || item.Owner != owner {
		return 0, nil
	}
	item.CustomData = data
	r.entries[id] = item
	return 1, nil
}

func (r *stubRepo) DeleteEntry(ctx context.Context, owner string, id uint64) (int64, error) {
	if r.failAll {
		return 0, errStub
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.entries[id]
	if !ok || item.Owner != owner {
		return 0, nil
	}
	delete(r.entries, id)
	return 1, nil
}

func (r *stubRepo) DeleteEntriesByOwner(ctx context.Context, owner string) (int64, error) {
	if r.failAll {
		return 0, errStub
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, item := range r.entries {
		if item.Owner == owner {
			delete(r.entries, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *stubRepo) GetFieldSetting(ctx context.Context, owner string, field models.Field) (*models.FieldSetting, error) {
	if r.failAll {
		return nil, errStub
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.settings[r.settingKey(owner, field)]
	if !ok {
		return nil, nil
	}
	out := item
	return &out, nil
}

func (r *stubRepo) UpsertFieldSetting(ctx context.Context, item *models.FieldSetting) error {
	if r.failAll {
		return errStub
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.settingKey(item.Owner, item.Field)
	if existing, ok := r.settings[key]; ok {
		existing.Options = item.Options
		r.settings[key] = existing
		*item = existing
		return nil
	}
	item.ID = r.nextID
	r.nextID++
	r.settings[key] = *item
	return nil
}

func (r *stubRepo) UpdateFieldOptions(ctx context.Context, owner string, field models.Field, options []byte) error {
	if r.failAll {
		return errStub
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.settingKey(owner, field)
	item, ok := r.settings[key]
	if !ok {
		return nil
	}
	item.Options = options
	r.settings[key] = item
	return nil
}

func (r *stubRepo) SetFieldDefault(ctx context.Context, owner string, field models.Field, value []byte) error {
	if r.failAll {
		return errStub
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.settingKey(owner, field)
	item, ok := r.settings[key]
	if !ok {
		return nil
	}
	item.Default = value
	r.settings[key] = item
	return nil
}

func (r *stubRepo) InsertCustomColumn(ctx context.Context, item *models.CustomColumn) error {
	if r.failAll {
		return errStub
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = r.nextID
	r.nextID++
	r.columns[item.ID] = *item
	return nil
}

func (r *stubRepo) GetCustomColumnByName(ctx context.Context, name string) (*models.CustomColumn, error) {
	if r.failAll {
		return nil, errStub
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.columns {
		if item.Name == name {
			out := item
			return &out, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) ListCustomColumns(ctx context.Context) ([]models.CustomColumn, error) {
	if r.failAll {
		return nil, errStub
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CustomColumn
	for _, item := range r.columns {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRepo) DeleteCustomColumn(ctx context.Context, id uint64) (int64, error) {
	if r.failAll {
		return 0, errStub
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.columns[id]; !ok {
		return 0, nil
	}
	delete(r.columns, id)
	return 1, nil
}

var _ repository.Repository = (*stubRepo)(nil)
