package pipeline

import (
	"fmt"
	"unicode/utf8"

	"github.com/contentflowhq/contentflow/internal/models"
)

// Message builders for the three agent capabilities. The agents parse these
// prompts, so the wording and field layout are part of the integration
// contract and must not drift.

func contentMessage(v *models.Video) string {
	return fmt.Sprintf("Generate a complete SEO-optimized blog article from this YouTube video. "+
		"Video URL: https://www.youtube.com/watch?v=%s, Video Title: %s, Channel: %s. "+
		"Extract the transcript, create an SEO structure, and write the full article.",
		v.VideoID, v.Title, v.ChannelName)
}

func imageMessage(v *models.Video) string {
	title := firstNonEmpty(v.MetaTitle, v.Title)
	topic := firstNonEmpty(v.MetaDescription, v.Title)
	return fmt.Sprintf("Create an infographic featured image for this blog article. "+
		"Title: %q. Key points from the article about: %s", title, topic)
}

func publishMessage(v *models.Video) string {
	body := v.HTMLBody
	if len(body) > 500 {
		n := 500
		// Back up so the cut never lands inside a multi-byte rune.
		for n > 0 && !utf8.RuneStart(body[n]) {
			n--
		}
		body = body[:n]
	}
	return fmt.Sprintf("Publish this article to WordPress: Title: %q, Slug: %q, "+
		"HTML Body: %s..., Meta Description: %q, Featured Image URL: %q, "+
		"Categories: %q, Tags: %q, FAQ Schema: %s, Video ID: %q (for duplicate prevention)",
		v.MetaTitle, v.Slug, body, v.MetaDescription, v.FeaturedImageURL,
		firstNonEmpty(v.Categories, "Uncategorized"), v.Tags,
		firstNonEmpty(v.FAQSchemaJSON, "none"), v.VideoID)
}
