package source

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contentflowhq/contentflow/internal/models"
)

func mustParse(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func timePtr(t time.Time) *time.Time { return &t }

// SampleVideos returns demo items covering every pipeline stage.
func SampleVideos() []models.Video {
	return []models.Video{
		{
			ID: "vid-s0001", VideoID: "dQw4w9WgXcQ",
			Title: "10 Advanced Python Tricks Every Developer Should Know", ChannelName: "Code Masters",
			PublishedAt: mustParse("2024-12-15T10:30:00Z"), Views: 245000, Stage: models.StagePosted,
			HTMLBody:  "<h1>10 Advanced Python Tricks</h1><p>This comprehensive guide covers...</p>",
			MetaTitle: "10 Advanced Python Tricks Every Developer Should Know | Code Masters",
			MetaDescription: "Master these 10 advanced Python programming tricks including " +
				"decorators, generators, and context managers.",
			Slug: "10-advanced-python-tricks-developers", WordCount: 2450, ReadingTimeMinutes: 12,
			FAQSchemaJSON: `{"@type":"FAQPage","mainEntity":[]}`,
			SEOStructure:  `{"headings":["H1","H2","H2","H3"]}`,
			FeaturedImageURL: "https://placehold.co/800x400/1a1a1a/ebebeb?text=Python+Tricks",
			ImageAltText:     "Python programming tricks infographic",
			WPPostID:         "wp-1234",
			PostURL:          "https://example.com/10-advanced-python-tricks",
			PublishedAtWP:    timePtr(mustParse("2024-12-16T08:00:00Z")),
			Categories:       "Programming", Tags: "python, tips, coding",
		},
		{
			ID: "vid-s0002", VideoID: "abc123xyz",
			Title: "Building Microservices with Go and gRPC", ChannelName: "DevOps Weekly",
			PublishedAt: mustParse("2024-12-18T14:00:00Z"), Views: 89000, Stage: models.StageWritten,
			HTMLBody:  "<h1>Building Microservices with Go</h1><p>Learn how to architect...</p>",
			MetaTitle: "Building Microservices with Go and gRPC - Complete Tutorial",
			MetaDescription: "Step-by-step guide to building production-ready microservices " +
				"using Go and gRPC.",
			Slug: "building-microservices-go-grpc", WordCount: 3200, ReadingTimeMinutes: 16,
			SEOStructure: `{"headings":["H1","H2","H2","H2","H3"]}`,
		},
		{
			ID: "vid-s0003", VideoID: "def456uvw",
			Title: "Next.js 15: What Changed and Why It Matters", ChannelName: "Frontend Focus",
			PublishedAt: mustParse("2024-12-20T09:15:00Z"), Views: 312000, Stage: models.StageReadyToPost,
			HTMLBody:  "<h1>Next.js 15 Changes</h1><p>The latest release brings...</p>",
			MetaTitle: "Next.js 15: Complete Changelog and Migration Guide",
			MetaDescription: "Everything new in Next.js 15 including turbopack improvements, " +
				"server actions, and more.",
			Slug: "nextjs-15-changes-migration-guide", WordCount: 2800, ReadingTimeMinutes: 14,
			FeaturedImageURL: "https://placehold.co/800x400/1a1a1a/ebebeb?text=Next.js+15",
			ImageAltText:     "Next.js 15 features overview",
			Categories:       "Web Development", Tags: "nextjs, react, frontend",
			ScheduledAt:      timePtr(mustParse("2024-12-22T10:00:00Z")),
		},
		{
			ID: "vid-s0004", VideoID: "ghi789rst",
			Title: "Machine Learning Pipeline Architecture", ChannelName: "AI Insights",
			PublishedAt: mustParse("2024-12-10T16:45:00Z"), Views: 156000, Stage: models.StageError,
			LastError:   "WordPress API returned 503: Service temporarily unavailable",
			LastStep:    "publishing",
			RetryCount:  2,
		},
		{
			ID: "vid-s0005", VideoID: "jkl012mno",
			Title: "Database Indexing Strategies Explained", ChannelName: "Code Masters",
			PublishedAt: mustParse("2024-12-22T11:30:00Z"), Views: 67000, Stage: models.StageNew,
		},
	}
}

// SampleActivity returns a demo activity log matching SampleVideos.
func SampleActivity() []models.Activity {
	entries := []models.Activity{
		{Timestamp: mustParse("2024-12-22T10:30:00Z"), VideoTitle: "10 Advanced Python Tricks", Action: "Published to WordPress", Result: models.ResultSuccess},
		{Timestamp: mustParse("2024-12-22T10:15:00Z"), VideoTitle: "10 Advanced Python Tricks", Action: "Image generated successfully", Result: models.ResultSuccess},
		{Timestamp: mustParse("2024-12-22T09:45:00Z"), VideoTitle: "10 Advanced Python Tricks", Action: "Content generated successfully", Result: models.ResultSuccess},
		{Timestamp: mustParse("2024-12-21T16:00:00Z"), VideoTitle: "Machine Learning Pipeline Architecture", Action: "Publishing failed", Result: models.ResultError, Details: "WordPress API returned 503"},
		{Timestamp: mustParse("2024-12-21T15:30:00Z"), VideoTitle: "Building Microservices with Go", Action: "Content generated successfully", Result: models.ResultSuccess},
		{Timestamp: mustParse("2024-12-21T14:00:00Z"), VideoTitle: "Next.js 15: What Changed", Action: "Image generated successfully", Result: models.ResultSuccess},
		{Timestamp: mustParse("2024-12-20T11:00:00Z"), VideoTitle: "Next.js 15: What Changed", Action: "Content generated successfully", Result: models.ResultSuccess},
		{Timestamp: mustParse("2024-12-20T10:30:00Z"), VideoTitle: "Database Indexing Strategies", Action: "Video fetched from source", Result: models.ResultSuccess},
	}
	for i := range entries {
		entries[i].ID = uuid.NewString()
	}
	return entries
}

// Seed loads the sample data set. It refuses to run over existing videos so
// a working database cannot be polluted by accident.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Video{}).Count(&count).Error; err != nil {
		return fmt.Errorf("source: count videos: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("source: database already has %d videos, refusing to seed", count)
	}

	videos := SampleVideos()
	if err := db.Create(&videos).Error; err != nil {
		return fmt.Errorf("source: seed videos: %w", err)
	}
	activity := SampleActivity()
	if err := db.Create(&activity).Error; err != nil {
		return fmt.Errorf("source: seed activity: %w", err)
	}
	return nil
}
