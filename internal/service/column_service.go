package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

// ErrDuplicateColumn means a custom column with the same name already exists.
var ErrDuplicateColumn = errors.New("service: column name already exists")

// ColumnService manages the global registry of user-defined journal columns.
// Columns only name extra keys; the values live in each entry's customData.
type ColumnService struct {
	repo repository.Repository
	log  *zap.Logger
}

func NewColumnService(repo repository.Repository, log *zap.Logger) *ColumnService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ColumnService{repo: repo, log: log}
}

func (s *ColumnService) Create(ctx context.Context, name string) (*models.CustomColumn, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidf("column name is required")
	}
	existing, err := s.repo.GetCustomColumnByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check column name: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateColumn
	}
	col := &models.CustomColumn{Name: name}
	if err := s.repo.InsertCustomColumn(ctx, col); err != nil {
		return nil, fmt.Errorf("insert column: %w", err)
	}
	s.log.Info("custom column created", zap.String("name", name), zap.Uint64("id", col.ID))
	return col, nil
}

func (s *ColumnService) List(ctx context.Context) ([]models.CustomColumn, error) {
	items, err := s.repo.ListCustomColumns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	return items, nil
}

// Delete removes the column registration. Values already written under the
// column's key stay in each entry's customData untouched.
func (s *ColumnService) Delete(ctx context.Context, id uint64) error {
	affected, err := s.repo.DeleteCustomColumn(ctx, id)
	if err != nil {
		return fmt.Errorf("delete column: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
