package agent

import (
	"encoding/json"
	"fmt"
)

// ArticleResult is the content-pipeline capability's result shape.
type ArticleResult struct {
	HTMLBody           string          `json:"html_body"`
	MetaTitle          string          `json:"meta_title"`
	MetaDescription    string          `json:"meta_description"`
	Slug               string          `json:"slug"`
	FAQSchemaJSON      string          `json:"faq_schema_json"`
	SEOStructure       json.RawMessage `json:"seo_structure"`
	WordCount          int             `json:"word_count"`
	ReadingTimeMinutes int             `json:"reading_time_minutes"`
}

// SEOStructureString renders seo_structure as a string: quoted JSON strings
// are unwrapped, objects are kept as their JSON text.
func (a *ArticleResult) SEOStructureString() string {
	if len(a.SEOStructure) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(a.SEOStructure, &s); err == nil {
		return s
	}
	return string(a.SEOStructure)
}

// ImageResult is the infographic capability's result shape. The image URL
// itself arrives via module_outputs artifact files, not here.
type ImageResult struct {
	AltText string `json:"alt_text"`
}

// PublishResult is the publisher capability's result shape.
type PublishResult struct {
	WPPostID     string `json:"wp_post_id"`
	PostURL      string `json:"post_url"`
	PublishedAt  string `json:"published_at"`
	ErrorMessage string `json:"error_message"`
}

// DecodeArticle parses the result payload of a content-generation call.
func DecodeArticle(r *Result) (*ArticleResult, error) {
	var a ArticleResult
	if err := decodeResult(r, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// DecodeImage parses the result payload of an image-generation call.
func DecodeImage(r *Result) (*ImageResult, error) {
	var i ImageResult
	if err := decodeResult(r, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

// DecodePublish parses the result payload of a publish call.
func DecodePublish(r *Result) (*PublishResult, error) {
	var p PublishResult
	if err := decodeResult(r, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func decodeResult(r *Result, into interface{}) error {
	if !r.HasResult() {
		return fmt.Errorf("agent: response has no result payload")
	}
	if err := json.Unmarshal(r.Response.Result, into); err != nil {
		return fmt.Errorf("agent: decode result payload: %w", err)
	}
	return nil
}
