package store

import (
	"fmt"
	"time"

	"github.com/contentflowhq/contentflow/internal/models"
	"gorm.io/gorm"
)

// Patch is a whole-item merge patch. Nil fields are left untouched, so a
// transition only writes the fields it owns and an ERROR transition never
// clears content populated by earlier successful steps.
type Patch struct {
	Stage              *string
	HTMLBody           *string
	MetaTitle          *string
	MetaDescription    *string
	Slug               *string
	FAQSchemaJSON      *string
	SEOStructure       *string
	WordCount          *int
	ReadingTimeMinutes *int
	FeaturedImageURL   *string
	ImageAltText       *string
	WPPostID           *string
	PostURL            *string
	PublishedAtWP      *time.Time
	Categories         *string
	Tags               *string
	ScheduledAt        *time.Time
	LastError          *string
	LastStep           *string
	RetryCount         *int
}

// String returns a pointer to s, for building patches.
func String(s string) *string { return &s }

// Int returns a pointer to n, for building patches.
func Int(n int) *int { return &n }

// Time returns a pointer to t, for building patches.
func Time(t time.Time) *time.Time { return &t }

// ApplyPatch merges a patch into the video row identified by id as a single
// UPDATE. It is the only mutation seam for in-flight items; callers compute
// the patch from the snapshot they were invoked with, so concurrent patches
// to the same item are last-write-wins per field.
func ApplyPatch(db *gorm.DB, id string, p Patch) error {
	updates := map[string]interface{}{}
	if p.Stage != nil {
		if !models.ValidStage(*p.Stage) {
			return fmt.Errorf("store: invalid stage %q", *p.Stage)
		}
		updates["stage"] = *p.Stage
	}
	if p.HTMLBody != nil {
		updates["html_body"] = *p.HTMLBody
	}
	if p.MetaTitle != nil {
		updates["meta_title"] = *p.MetaTitle
	}
	if p.MetaDescription != nil {
		updates["meta_description"] = *p.MetaDescription
	}
	if p.Slug != nil {
		updates["slug"] = *p.Slug
	}
	if p.FAQSchemaJSON != nil {
		updates["faq_schema_json"] = *p.FAQSchemaJSON
	}
	if p.SEOStructure != nil {
		updates["seo_structure"] = *p.SEOStructure
	}
	if p.WordCount != nil {
		updates["word_count"] = *p.WordCount
	}
	if p.ReadingTimeMinutes != nil {
		updates["reading_time_minutes"] = *p.ReadingTimeMinutes
	}
	if p.FeaturedImageURL != nil {
		updates["featured_image_url"] = *p.FeaturedImageURL
	}
	if p.ImageAltText != nil {
		updates["image_alt_text"] = *p.ImageAltText
	}
	if p.WPPostID != nil {
		updates["wp_post_id"] = *p.WPPostID
	}
	if p.PostURL != nil {
		updates["post_url"] = *p.PostURL
	}
	if p.PublishedAtWP != nil {
		updates["published_at_wp"] = *p.PublishedAtWP
	}
	if p.Categories != nil {
		updates["categories"] = *p.Categories
	}
	if p.Tags != nil {
		updates["tags"] = *p.Tags
	}
	if p.ScheduledAt != nil {
		updates["scheduled_at"] = *p.ScheduledAt
	}
	if p.LastError != nil {
		updates["last_error"] = *p.LastError
	}
	if p.LastStep != nil {
		updates["last_step"] = *p.LastStep
	}
	if p.RetryCount != nil {
		cur, err := Get(db, id)
		if err != nil {
			return err
		}
		// retry_count is monotonic: a patch can only raise it.
		if *p.RetryCount < cur.RetryCount {
			return fmt.Errorf("store: retry_count cannot decrease (%d -> %d)", cur.RetryCount, *p.RetryCount)
		}
		updates["retry_count"] = *p.RetryCount
	}

	if len(updates) == 0 {
		return nil
	}

	result := db.Model(&models.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("store: patch video %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("store: video not found: %s", id)
	}
	return nil
}
