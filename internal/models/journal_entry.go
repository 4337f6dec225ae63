package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Outcome values.
const (
	OutcomeWin       = "Win"
	OutcomeLoss      = "Loss"
	OutcomeBreakeven = "Breakeven"
)

// Direction values.
const (
	DirectionLong  = "Long"
	DirectionShort = "Short"
)

// JournalEntry is one logged discretionary trade. Every row is partitioned by
// Owner; Owner is set on create and never updated.
type JournalEntry struct {
	ID    uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Owner string `gorm:"type:varchar(120);not null;index" json:"owner"`

	Pair      string    `gorm:"type:varchar(40);not null" json:"pair"`
	TradeDate time.Time `gorm:"type:date;not null;index" json:"tradeDate"`
	Direction string    `gorm:"type:varchar(10);not null" json:"direction"`

	PremarketCondition datatypes.JSON `gorm:"type:jsonb;not null" json:"premarketCondition"`
	POI                datatypes.JSON `gorm:"type:jsonb;not null" json:"poi"`
	ReactionToPOI      datatypes.JSON `gorm:"type:jsonb;not null" json:"reactionToPoi"`
	TP                 datatypes.JSON `gorm:"type:jsonb;not null" json:"tp"`
	SL                 datatypes.JSON `gorm:"type:jsonb;not null" json:"sl"`
	Psychology         datatypes.JSON `gorm:"type:jsonb" json:"psychology"`

	EntryType string `gorm:"type:varchar(40);not null" json:"entryType"`
	Session   string `gorm:"type:varchar(40)" json:"session"`
	Outcome   string `gorm:"type:varchar(12);not null;index" json:"outcome"`

	RRRatio  *decimal.Decimal `gorm:"type:numeric(10,4)" json:"rrRatio,omitempty"`
	ChartURL *string          `gorm:"type:text" json:"chartUrl,omitempty"`

	CustomData datatypes.JSON `gorm:"type:jsonb" json:"customData,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}

// DateString renders the trade date as a plain calendar date.
func (e *JournalEntry) DateString() string {
	return e.TradeDate.Format("2006-01-02")
}
