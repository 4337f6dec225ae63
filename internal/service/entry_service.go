package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradejournal/internal/models"
	"tradejournal/internal/repository"
)

// ErrNotFound means the target row does not exist for the requesting owner.
// A row owned by someone else is indistinguishable from a missing one.
var ErrNotFound = errors.New("service: not found")

// ValidationError carries a user-facing message for a rejected form.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// EntryForm is the create/update payload for a journal entry.
type EntryForm struct {
	Pair               string            `json:"pair"`
	Date               string            `json:"date"`
	Direction          string            `json:"direction"`
	PremarketCondition []string          `json:"premarketCondition"`
	POI                []string          `json:"poi"`
	ReactionToPOI      []string          `json:"reactionToPoi"`
	TP                 []string          `json:"tp"`
	SL                 []string          `json:"sl"`
	Psychology         []string          `json:"psychology"`
	EntryType          string            `json:"entryType"`
	Session            string            `json:"session"`
	Outcome            string            `json:"outcome"`
	RRRatio            *float64          `json:"rrRatio"`
	ChartURL           *string           `json:"chartUrl"`
	CustomData         map[string]string `json:"customData"`
}

// EntryService owns journal-entry CRUD and its validation rules.
type EntryService struct {
	repo repository.Repository
	log  *zap.Logger
}

func NewEntryService(repo repository.Repository, log *zap.Logger) *EntryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &EntryService{repo: repo, log: log}
}

func trimSet(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func (s *EntryService) validate(form *EntryForm) (time.Time, error) {
	if strings.TrimSpace(form.Pair) == "" {
		return time.Time{}, invalidf("pair is required")
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(form.Date))
	if err != nil {
		return time.Time{}, invalidf("date must be YYYY-MM-DD")
	}
	switch form.Direction {
	case models.DirectionLong, models.DirectionShort:
	default:
		return time.Time{}, invalidf("direction must be %s or %s", models.DirectionLong, models.DirectionShort)
	}
	switch form.Outcome {
	case models.OutcomeWin, models.OutcomeLoss, models.OutcomeBreakeven:
	default:
		return time.Time{}, invalidf("outcome must be Win, Loss or Breakeven")
	}
	if strings.TrimSpace(form.EntryType) == "" {
		return time.Time{}, invalidf("entryType is required")
	}
	for name, tags := range map[string][]string{
		"premarketCondition": form.PremarketCondition,
		"poi":                form.POI,
		"reactionToPoi":      form.ReactionToPOI,
		"tp":                 form.TP,
		"sl":                 form.SL,
	} {
		if len(trimSet(tags)) == 0 {
			return time.Time{}, invalidf("%s needs at least one tag", name)
		}
	}
	if form.RRRatio != nil && *form.RRRatio <= 0 {
		return time.Time{}, invalidf("rrRatio must be positive when set")
	}
	if form.ChartURL != nil && strings.TrimSpace(*form.ChartURL) != "" {
		u, err := url.Parse(strings.TrimSpace(*form.ChartURL))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return time.Time{}, invalidf("chartUrl must be a valid http(s) URL")
		}
	}
	return date, nil
}

func (s *EntryService) apply(entry *models.JournalEntry, form *EntryForm, date time.Time) {
	entry.Pair = strings.TrimSpace(form.Pair)
	entry.TradeDate = date
	entry.Direction = form.Direction
	entry.PremarketCondition = models.EncodeStrings(trimSet(form.PremarketCondition))
	entry.POI = models.EncodeStrings(trimSet(form.POI))
	entry.ReactionToPOI = models.EncodeStrings(trimSet(form.ReactionToPOI))
	entry.TP = models.EncodeStrings(trimSet(form.TP))
	entry.SL = models.EncodeStrings(trimSet(form.SL))
	entry.Psychology = models.EncodeStrings(trimSet(form.Psychology))
	entry.EntryType = strings.TrimSpace(form.EntryType)
	entry.Session = strings.TrimSpace(form.Session)
	entry.Outcome = form.Outcome

	entry.RRRatio = nil
	if form.RRRatio != nil {
		d := decimal.NewFromFloat(*form.RRRatio)
		entry.RRRatio = &d
	}
	entry.ChartURL = nil
	if form.ChartURL != nil {
		if u := strings.TrimSpace(*form.ChartURL); u != "" {
			entry.ChartURL = &u
		}
	}
	if form.CustomData != nil {
		raw, _ := json.Marshal(form.CustomData)
		entry.CustomData = raw
	}
}

func (s *EntryService) Create(ctx context.Context, owner string, form *EntryForm) (*models.JournalEntry, error) {
	date, err := s.validate(form)
	if err != nil {
		return nil, err
	}
	entry := &models.JournalEntry{Owner: owner}
	s.apply(entry, form, date)
	if err := s.repo.InsertEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	s.log.Info("journal entry created", zap.String("owner", owner), zap.Uint64("id", entry.ID))
	return entry, nil
}

func (s *EntryService) Get(ctx context.Context, owner string, id uint64) (*models.JournalEntry, error) {
	entry, err := s.repo.GetEntryByID(ctx, owner, id)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	if entry == nil {
		return nil, ErrNotFound
	}
	return entry, nil
}

func (s *EntryService) List(ctx context.Context, params repository.ListEntriesParams) ([]models.JournalEntry, int64, error) {
	items, err := s.repo.ListEntries(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list entries: %w", err)
	}
	total, err := s.repo.CountEntries(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("count entries: %w", err)
	}
	return items, total, nil
}

// ListAll pages through the owner's whole journal in trade-date order so
// analytics and analysis reducers see every entry, not just the first page.
func (s *EntryService) ListAll(ctx context.Context, owner string) ([]models.JournalEntry, error) {
	const page = 1000
	asc := true
	var all []models.JournalEntry
	for offset := 0; ; offset += page {
		batch, err := s.repo.ListEntries(ctx, repository.ListEntriesParams{
			Owner:   owner,
			Limit:   page,
			Offset:  offset,
			OrderBy: "date",
			Asc:     &asc,
		})
		if err != nil {
			return nil, fmt.Errorf("list entries: %w", err)
		}
		all = append(all, batch...)
		if len(batch) < page {
			return all, nil
		}
	}
}

// Update replaces every form-managed column of the entry; optional fields
// absent from the form are cleared rather than kept. CustomData is preserved
// unless the form carries a replacement.
func (s *EntryService) Update(ctx context.Context, owner string, id uint64, form *EntryForm) (*models.JournalEntry, error) {
	date, err := s.validate(form)
	if err != nil {
		return nil, err
	}
	entry, err := s.repo.GetEntryByID(ctx, owner, id)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	if entry == nil {
		return nil, ErrNotFound
	}
	s.apply(entry, form, date)
	if err := s.repo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("save entry: %w", err)
	}
	return entry, nil
}

func (s *EntryService) UpdateCustomData(ctx context.Context, owner string, id uint64, data map[string]string) (*models.JournalEntry, error) {
	if data == nil {
		data = map[string]string{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode custom data: %w", err)
	}
	affected, err := s.repo.UpdateEntryCustomData(ctx, owner, id, raw)
	if err != nil {
		return nil, fmt.Errorf("update custom data: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, owner, id)
}

func (s *EntryService) Delete(ctx context.Context, owner string, id uint64) error {
	affected, err := s.repo.DeleteEntry(ctx, owner, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll wipes every entry belonging to the owner in one transaction.
func (s *EntryService) DeleteAll(ctx context.Context, owner string) (int64, error) {
	deleted, err := s.repo.DeleteEntriesByOwner(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("delete entries: %w", err)
	}
	s.log.Info("journal wiped", zap.String("owner", owner), zap.Int64("deleted", deleted))
	return deleted, nil
}
