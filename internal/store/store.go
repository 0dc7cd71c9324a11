// Package store owns the video item store and activity log. All mutation of
// video rows flows through ApplyPatch so stage invariants are enforced at a
// single seam.
package store

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/contentflowhq/contentflow/internal/models"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for creating a new video item.
type CreateOpts struct {
	VideoID     string
	Title       string
	ChannelName string
	PublishedAt time.Time
	Views       int
	Thumbnail   string
}

// ListFilters holds optional filters for listing videos.
type ListFilters struct {
	Stage     string
	SortField string // title, published_at, views
	SortAsc   bool
}

// GenerateID creates a unique video item ID in vid-xxxxx format (5-char hex).
func GenerateID() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("store: generate ID: %w", err)
	}
	return "vid-" + hex.EncodeToString(b)[:5], nil
}

// Create inserts a new video item at stage NEW.
func Create(db *gorm.DB, opts CreateOpts) (*models.Video, error) {
	if opts.Title == "" {
		return nil, fmt.Errorf("store: title is required")
	}

	id, err := generateUniqueID(db)
	if err != nil {
		return nil, err
	}

	v := models.Video{
		ID:          id,
		VideoID:     opts.VideoID,
		Title:       opts.Title,
		ChannelName: opts.ChannelName,
		PublishedAt: opts.PublishedAt,
		Views:       opts.Views,
		Thumbnail:   opts.Thumbnail,
		Stage:       models.StageNew,
	}
	if err := db.Create(&v).Error; err != nil {
		return nil, fmt.Errorf("store: create video %q: %w", opts.Title, err)
	}
	return &v, nil
}

// generateUniqueID retries GenerateID until it finds an unused ID.
func generateUniqueID(db *gorm.DB) (string, error) {
	for i := 0; i < 10; i++ {
		id, err := GenerateID()
		if err != nil {
			return "", err
		}
		var count int64
		if err := db.Model(&models.Video{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return "", fmt.Errorf("store: check ID %s: %w", id, err)
		}
		if count == 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("store: could not generate unique ID after 10 attempts")
}

// Get returns a video by ID.
func Get(db *gorm.DB, id string) (*models.Video, error) {
	var v models.Video
	if err := db.Where("id = ?", id).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store: video not found: %s", id)
		}
		return nil, fmt.Errorf("store: get video %s: %w", id, err)
	}
	return &v, nil
}

// List returns videos matching filters.
func List(db *gorm.DB, f ListFilters) ([]models.Video, error) {
	q := db.Model(&models.Video{})
	if f.Stage != "" {
		q = q.Where("stage = ?", f.Stage)
	}

	dir := "DESC"
	if f.SortAsc {
		dir = "ASC"
	}
	switch f.SortField {
	case "title":
		q = q.Order("title " + dir)
	case "views":
		q = q.Order("views " + dir)
	case "published_at", "":
		q = q.Order("published_at " + dir)
	default:
		return nil, fmt.Errorf("store: unknown sort field %q", f.SortField)
	}

	var videos []models.Video
	if err := q.Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("store: list videos: %w", err)
	}
	return videos, nil
}

// Remove deletes a video by ID. Manual removal is the only destructor;
// no automatic cleanup happens elsewhere.
func Remove(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Video{})
	if result.Error != nil {
		return fmt.Errorf("store: remove video %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("store: video not found: %s", id)
	}
	return nil
}

// Errors returns all videos currently in the ERROR stage. The error surface
// is derived from the item store on every call, never cached.
func Errors(db *gorm.DB) ([]models.Video, error) {
	var videos []models.Video
	if err := db.Where("stage = ?", models.StageError).
		Order("updated_at DESC").Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("store: list errors: %w", err)
	}
	return videos, nil
}

// StageCounts returns the number of videos in each stage. Stages with no
// videos are present with a zero count.
func StageCounts(db *gorm.DB) (map[string]int, error) {
	type row struct {
		Stage string
		Count int
	}
	var rows []row
	if err := db.Model(&models.Video{}).
		Select("stage, count(*) as count").
		Group("stage").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: stage counts: %w", err)
	}

	counts := make(map[string]int, len(models.AllStages))
	for _, s := range models.AllStages {
		counts[s] = 0
	}
	for _, r := range rows {
		counts[r.Stage] = r.Count
	}
	return counts, nil
}
