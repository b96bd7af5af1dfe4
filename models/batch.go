package models

import (
	"encoding/json"
	"time"

	"oddscap/pkg/odds"
)

// BatchState is the capture-batch lifecycle state. OPEN accumulates images,
// PROCESSED carries a consolidated odds record, SENT is terminal and the
// batch becomes immutable.
type BatchState string

const (
	BatchOpen      BatchState = "OPEN"
	BatchProcessed BatchState = "PROCESSED"
	BatchSent      BatchState = "SENT"
)

// CaptureBatch is one capture session for a single match. At most one batch
// per session key is in OPEN or PROCESSED state; starting a new one discards
// any unsent predecessor.
type CaptureBatch struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	SessionKey int64      `gorm:"index;not null" json:"session_key"`
	HomeTeam   string     `gorm:"size:128;not null" json:"home_team"`
	AwayTeam   string     `gorm:"size:128;not null" json:"away_team"`
	League     string     `gorm:"size:128" json:"league,omitempty"`
	MatchDate  string     `gorm:"size:64" json:"match_date,omitempty"`
	State      BatchState `gorm:"size:16;not null;index" json:"state"`
	// Consolidated odds record, JSON-encoded; empty until processed.
	OddsJSON    string     `gorm:"column:odds_json;type:text" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	SentAt      *time.Time `json:"sent_at,omitempty"`

	Images []CaptureImage `gorm:"foreignKey:BatchID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images"`
}

// CaptureImage references one uploaded screenshot. The blob itself lives with
// the storage collaborator under StoreKey; the row only records the handle.
type CaptureImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BatchID    string    `gorm:"size:36;index;not null" json:"-"`
	FileID     string    `gorm:"size:128;not null" json:"file_id"`
	StoreKey   string    `gorm:"size:255;not null" json:"store_key"`
	UploadedAt time.Time `json:"uploaded_at"`
	Processed  bool      `gorm:"default:false" json:"processed"`
}

// Match returns the batch's match info.
func (b *CaptureBatch) Match() MatchInfo {
	return MatchInfo{HomeTeam: b.HomeTeam, AwayTeam: b.AwayTeam, League: b.League, MatchDate: b.MatchDate}
}

// ConsolidatedOdds decodes the stored odds record. ok is false until the
// batch has been processed.
func (b *CaptureBatch) ConsolidatedOdds() (odds.Record, bool) {
	if b.OddsJSON == "" {
		return odds.Record{}, false
	}
	var rec odds.Record
	if err := json.Unmarshal([]byte(b.OddsJSON), &rec); err != nil {
		return odds.Record{}, false
	}
	return rec, true
}

// SetConsolidatedOdds stores the consolidated record.
func (b *CaptureBatch) SetConsolidatedOdds(rec odds.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	b.OddsJSON = string(data)
	return nil
}
