package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

// SettingsService manages per-owner field vocabularies and form defaults.
// Rows are seeded lazily from the global defaults the first time a field is
// read for an owner. Free-input fields (rrRatio, chartUrl, date) have no
// vocabulary: option reads return an empty list, option mutations are no-ops,
// and only a stored default gives them a row.
type SettingsService struct {
	repo repository.Repository
	log  *zap.Logger
}

func NewSettingsService(repo repository.Repository, log *zap.Logger) *SettingsService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SettingsService{repo: repo, log: log}
}

// GetSetting returns the owner's setting row for a vocabulary field, seeding
// it from the global defaults on first access.
func (s *SettingsService) GetSetting(ctx context.Context, owner string, field models.Field) (*models.FieldSetting, error) {
	setting, err := s.repo.GetFieldSetting(ctx, owner, field)
	if err != nil {
		return nil, fmt.Errorf("get field setting: %w", err)
	}
	if setting != nil {
		return setting, nil
	}
	setting = &models.FieldSetting{
		Owner:   owner,
		Field:   field,
		Options: models.EncodeStrings(models.DefaultOptions(field)),
	}
	if err := s.repo.UpsertFieldSetting(ctx, setting); err != nil {
		return nil, fmt.Errorf("seed field setting: %w", err)
	}
	return setting, nil
}

// GetOptions returns the owner's vocabulary for the field. Fields without a
// vocabulary read as an empty list and never seed a row.
func (s *SettingsService) GetOptions(ctx context.Context, owner string, field models.Field) ([]string, error) {
	if !field.HasVocabulary() {
		return []string{}, nil
	}
	setting, err := s.GetSetting(ctx, owner, field)
	if err != nil {
		return nil, err
	}
	return models.DecodeStrings(setting.Options), nil
}

// AddOption appends a new option. Duplicate (case-sensitive) and blank values
// are rejected; fields without a vocabulary ignore the call.
func (s *SettingsService) AddOption(ctx context.Context, owner string, field models.Field, value string) ([]string, error) {
	if !field.HasVocabulary() {
		return []string{}, nil
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, invalidf("option value is required")
	}
	setting, err := s.GetSetting(ctx, owner, field)
	if err != nil {
		return nil, err
	}
	options := models.DecodeStrings(setting.Options)
	for _, opt := range options {
		if opt == value {
			return nil, invalidf("option %q already exists", value)
		}
	}
	options = append(options, value)
	if err := s.repo.UpdateFieldOptions(ctx, owner, field, models.EncodeStrings(options)); err != nil {
		return nil, fmt.Errorf("update options: %w", err)
	}
	return options, nil
}

// RemoveOption deletes an option and scrubs it from the field's default so
// the default never references a vocabulary entry that no longer exists.
func (s *SettingsService) RemoveOption(ctx context.Context, owner string, field models.Field, value string) ([]string, error) {
	if !field.HasVocabulary() {
		return []string{}, nil
	}
	setting, err := s.GetSetting(ctx, owner, field)
	if err != nil {
		return nil, err
	}
	options := models.DecodeStrings(setting.Options)
	kept := make([]string, 0, len(options))
	found := false
	for _, opt := range options {
		if opt == value {
			found = true
			continue
		}
		kept = append(kept, opt)
	}
	if !found {
		return nil, ErrNotFound
	}
	if err := s.repo.UpdateFieldOptions(ctx, owner, field, models.EncodeStrings(kept)); err != nil {
		return nil, fmt.Errorf("update options: %w", err)
	}
	if err := s.scrubDefault(ctx, owner, field, setting.Default, value, ""); err != nil {
		return nil, err
	}
	return kept, nil
}

// RenameOption renames an option in place, rewriting the default to follow.
func (s *SettingsService) RenameOption(ctx context.Context, owner string, field models.Field, from, to string) ([]string, error) {
	if !field.HasVocabulary() {
		return []string{}, nil
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return nil, invalidf("new option value is required")
	}
	setting, err := s.GetSetting(ctx, owner, field)
	if err != nil {
		return nil, err
	}
	options := models.DecodeStrings(setting.Options)
	found := false
	for i, opt := range options {
		if opt == to && opt != from {
			return nil, invalidf("option %q already exists", to)
		}
		if opt == from {
			options[i] = to
			found = true
		}
	}
	if !found {
		return nil, ErrNotFound
	}
	if err := s.repo.UpdateFieldOptions(ctx, owner, field, models.EncodeStrings(options)); err != nil {
		return nil, fmt.Errorf("update options: %w", err)
	}
	if err := s.scrubDefault(ctx, owner, field, setting.Default, from, to); err != nil {
		return nil, err
	}
	return options, nil
}

// scrubDefault rewrites the stored default after a vocabulary change: `from`
// is replaced with `to`, or removed when `to` is empty. A default left with
// nothing in it is cleared to NULL.
func (s *SettingsService) scrubDefault(ctx context.Context, owner string, field models.Field, current []byte, from, to string) error {
	if len(current) == 0 {
		return nil
	}
	var next []byte
	if field.MultiSelect() {
		var values []string
		if err := json.Unmarshal(current, &values); err != nil {
			return nil
		}
		kept := make([]string, 0, len(values))
		changed := false
		for _, v := range values {
			if v == from {
				changed = true
				if to != "" {
					kept = append(kept, to)
				}
				continue
			}
			kept = append(kept, v)
		}
		if !changed {
			return nil
		}
		if len(kept) > 0 {
			next, _ = json.Marshal(kept)
		}
	} else {
		var value string
		if err := json.Unmarshal(current, &value); err != nil || value != from {
			return nil
		}
		if to != "" {
			next, _ = json.Marshal(to)
		}
	}
	if err := s.repo.SetFieldDefault(ctx, owner, field, next); err != nil {
		return fmt.Errorf("rewrite default: %w", err)
	}
	return nil
}

// GetDefault returns the raw JSON default for the field, or nil when unset.
// Free-input fields are read directly; an absent row just means no default.
func (s *SettingsService) GetDefault(ctx context.Context, owner string, field models.Field) (json.RawMessage, error) {
	var setting *models.FieldSetting
	var err error
	if field.HasVocabulary() {
		setting, err = s.GetSetting(ctx, owner, field)
	} else {
		setting, err = s.repo.GetFieldSetting(ctx, owner, field)
		if err != nil {
			err = fmt.Errorf("get field setting: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}
	if setting == nil || len(setting.Default) == 0 {
		return nil, nil
	}
	return json.RawMessage(setting.Default), nil
}

// SetDefault stores the form default for the field. A JSON null (or absent
// body) clears it. Vocabulary fields require the value to come from the
// current vocabulary (a string for single-value fields, a string array for
// multi-select ones); free-input fields accept any JSON value, such as a
// number for rrRatio or a string for chartUrl.
func (s *SettingsService) SetDefault(ctx context.Context, owner string, field models.Field, value json.RawMessage) error {
	trimmed := strings.TrimSpace(string(value))
	clearing := trimmed == "" || trimmed == "null"

	if !field.HasVocabulary() {
		if clearing {
			if err := s.repo.SetFieldDefault(ctx, owner, field, nil); err != nil {
				return fmt.Errorf("clear default: %w", err)
			}
			return nil
		}
		if !json.Valid(value) {
			return invalidf("default for %s must be valid JSON", field)
		}
		// The row only exists to carry the default; options stay empty.
		row := &models.FieldSetting{
			Owner:   owner,
			Field:   field,
			Options: models.EncodeStrings(nil),
		}
		if err := s.repo.UpsertFieldSetting(ctx, row); err != nil {
			return fmt.Errorf("ensure field setting: %w", err)
		}
		if err := s.repo.SetFieldDefault(ctx, owner, field, value); err != nil {
			return fmt.Errorf("set default: %w", err)
		}
		return nil
	}

	setting, err := s.GetSetting(ctx, owner, field)
	if err != nil {
		return err
	}
	if clearing {
		if err := s.repo.SetFieldDefault(ctx, owner, field, nil); err != nil {
			return fmt.Errorf("clear default: %w", err)
		}
		return nil
	}

	options := models.DecodeStrings(setting.Options)
	inVocabulary := func(v string) bool {
		for _, opt := range options {
			if opt == v {
				return true
			}
		}
		return false
	}

	if field.MultiSelect() {
		var values []string
		if err := json.Unmarshal(value, &values); err != nil {
			return invalidf("default for %s must be a string array", field)
		}
		for _, v := range values {
			if !inVocabulary(v) {
				return invalidf("default value %q is not in the %s vocabulary", v, field)
			}
		}
	} else {
		var single string
		if err := json.Unmarshal(value, &single); err != nil {
			return invalidf("default for %s must be a string", field)
		}
		if !inVocabulary(single) {
			return invalidf("default value %q is not in the %s vocabulary", single, field)
		}
	}

	if err := s.repo.SetFieldDefault(ctx, owner, field, value); err != nil {
		return fmt.Errorf("set default: %w", err)
	}
	return nil
}

// SeedAll makes sure every vocabulary field has a settings row for the owner.
// Best effort per field; the first error is reported after the sweep.
func (s *SettingsService) SeedAll(ctx context.Context, owner string) error {
	var firstErr error
	for _, field := range models.AllFields {
		if !field.HasVocabulary() {
			continue
		}
		if _, err := s.GetSetting(ctx, owner, field); err != nil {
			s.log.Warn("seed field failed", zap.String("owner", owner), zap.String("field", string(field)), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
