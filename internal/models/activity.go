package models

import "time"

// Activity is one entry in the bounded activity feed. Entries are immutable
// once created; the store evicts the oldest past 50 entries.
type Activity struct {
	ID         string    `gorm:"primaryKey;size:36"`
	Timestamp  time.Time `gorm:"index"`
	VideoTitle string    `gorm:"size:256"`
	Action     string    `gorm:"size:256"`
	Result     string    `gorm:"size:8"`
	Details    string    `gorm:"type:text"`
}
