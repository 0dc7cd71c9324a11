package models

import "time"

// Video is the core work item in ContentFlow. It is created at stage NEW by
// source ingestion and advances through the pipeline as agent calls succeed.
type Video struct {
	ID          string    `gorm:"primaryKey;size:32"`
	VideoID     string    `gorm:"size:64;index"`
	Title       string    `gorm:"not null"`
	ChannelName string    `gorm:"size:128"`
	PublishedAt time.Time `gorm:"index"`
	Views       int
	Thumbnail   string `gorm:"size:512"`
	Stage       string `gorm:"size:16;default:NEW;index"`

	// Content payload, populated progressively as the stage advances.
	HTMLBody           string `gorm:"type:text"`
	MetaTitle          string `gorm:"size:256"`
	MetaDescription    string `gorm:"size:512"`
	Slug               string `gorm:"size:256"`
	FAQSchemaJSON      string `gorm:"type:text"`
	SEOStructure       string `gorm:"type:text"`
	WordCount          int
	ReadingTimeMinutes int
	FeaturedImageURL   string `gorm:"size:512"`
	ImageAltText       string `gorm:"size:256"`
	WPPostID           string `gorm:"size:32"`
	PostURL            string `gorm:"size:512"`
	PublishedAtWP      *time.Time
	Categories         string `gorm:"size:256"`
	Tags               string `gorm:"size:256"`
	ScheduledAt        *time.Time

	// Failure payload. RetryCount is item-scoped and never resets.
	LastError  string `gorm:"type:text"`
	LastStep   string `gorm:"size:32"`
	RetryCount int    `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
