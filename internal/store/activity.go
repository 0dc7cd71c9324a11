package store

import (
	"fmt"
	"time"

	"github.com/contentflowhq/contentflow/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxActivityEntries caps the activity log. Recording past the cap evicts the
// oldest entries.
const MaxActivityEntries = 50

// Record appends an activity entry and trims the log to the cap.
func Record(db *gorm.DB, videoTitle, action, result, details string) error {
	entry := models.Activity{
		ID:         uuid.NewString(),
		Timestamp:  time.Now(),
		VideoTitle: videoTitle,
		Action:     action,
		Result:     result,
		Details:    details,
	}
	if err := db.Create(&entry).Error; err != nil {
		return fmt.Errorf("store: record activity: %w", err)
	}
	return trimActivity(db)
}

// trimActivity deletes everything older than the newest MaxActivityEntries.
func trimActivity(db *gorm.DB) error {
	var keep []string
	if err := db.Model(&models.Activity{}).
		Order("timestamp DESC, id DESC").
		Limit(MaxActivityEntries).
		Pluck("id", &keep).Error; err != nil {
		return fmt.Errorf("store: trim activity: %w", err)
	}
	if len(keep) < MaxActivityEntries {
		return nil
	}
	if err := db.Where("id NOT IN ?", keep).Delete(&models.Activity{}).Error; err != nil {
		return fmt.Errorf("store: trim activity: %w", err)
	}
	return nil
}

// RecentActivity returns the newest entries, reverse-chronological.
// A limit of 0 returns up to the full cap.
func RecentActivity(db *gorm.DB, limit int) ([]models.Activity, error) {
	if limit <= 0 || limit > MaxActivityEntries {
		limit = MaxActivityEntries
	}
	var entries []models.Activity
	if err := db.Order("timestamp DESC, id DESC").
		Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("store: recent activity: %w", err)
	}
	return entries, nil
}
