// Package pipeline implements the stage transition driver: the state machine
// that advances video items through the content pipeline based on the outcome
// of external agent calls.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/contentflowhq/contentflow/internal/agent"
	"github.com/contentflowhq/contentflow/internal/config"
	"github.com/contentflowhq/contentflow/internal/models"
	"github.com/contentflowhq/contentflow/internal/notify"
	"github.com/contentflowhq/contentflow/internal/store"
)

// Fallback error strings when the agent gives no message.
const (
	genericContentError = "Content generation failed"
	genericImageError   = "Image generation failed"
	genericPublishError = "Publishing failed"
)

// Driver runs pipeline transitions. Agent-call failures are absorbed into the
// item (ERROR stage, last_error, retry counter) and recorded in the activity
// log; its methods only return an error when the store itself fails, so one
// item's failure never blocks the rest of a batch.
type Driver struct {
	db       *gorm.DB
	agent    agent.Invoker
	agents   config.AgentConfig
	notifier notify.Notifier
	tracker  *Tracker
}

// Opts holds parameters for creating a Driver.
type Opts struct {
	DB       *gorm.DB
	Agent    agent.Invoker
	Agents   config.AgentConfig
	Notifier notify.Notifier // optional
	Tracker  *Tracker        // optional; created when nil
}

// New creates a Driver.
func New(opts Opts) (*Driver, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("pipeline: db is required")
	}
	if opts.Agent == nil {
		return nil, fmt.Errorf("pipeline: agent client is required")
	}
	if opts.Tracker == nil {
		opts.Tracker = NewTracker()
	}
	return &Driver{
		db:       opts.DB,
		agent:    opts.Agent,
		agents:   opts.Agents,
		notifier: opts.Notifier,
		tracker:  opts.Tracker,
	}, nil
}

// Tracker exposes the in-flight projection for UI surfaces.
func (d *Driver) Tracker() *Tracker { return d.tracker }

// GenerateContent runs the content-generation transition. The item is tagged
// TRANSCRIBED the moment the call starts; that tag is a UI-visible in-flight
// marker, not a committed terminal state. Callable from NEW or as a retry
// from ERROR.
func (d *Driver) GenerateContent(ctx context.Context, v *models.Video) error {
	done := d.tracker.Begin(d.agents.ContentAgentID)
	defer done()

	if err := store.ApplyPatch(d.db, v.ID, store.Patch{
		Stage:    store.String(models.StageTranscribed),
		LastStep: store.String(string(StepContentGeneration)),
	}); err != nil {
		return err
	}
	if err := store.Record(d.db, v.Title, "Content generation started", models.ResultSuccess, ""); err != nil {
		return err
	}

	res, err := d.agent.Invoke(ctx, contentMessage(v), d.agents.ContentAgentID)
	if err != nil {
		return d.fail(ctx, v, StepContentGeneration, "Content generation failed", err.Error())
	}
	if !res.Success || !res.HasResult() {
		return d.fail(ctx, v, StepContentGeneration, "Content generation failed", firstNonEmpty(res.Error, genericContentError))
	}

	article, err := agent.DecodeArticle(res)
	if err != nil {
		// Success with an undecodable payload: nothing usable to advance
		// the item, treated as a hard failure.
		return d.fail(ctx, v, StepContentGeneration, "Content generation failed", genericContentError)
	}

	if err := store.ApplyPatch(d.db, v.ID, store.Patch{
		Stage:              store.String(models.StageWritten),
		HTMLBody:           store.String(article.HTMLBody),
		MetaTitle:          store.String(article.MetaTitle),
		MetaDescription:    store.String(article.MetaDescription),
		Slug:               store.String(article.Slug),
		FAQSchemaJSON:      store.String(article.FAQSchemaJSON),
		SEOStructure:       store.String(article.SEOStructureString()),
		WordCount:          store.Int(article.WordCount),
		ReadingTimeMinutes: store.Int(article.ReadingTimeMinutes),
		LastStep:           store.String(string(StepContentGeneration)),
	}); err != nil {
		return err
	}
	return store.Record(d.db, v.Title, "Content generated successfully", models.ResultSuccess, "")
}

// GenerateImage runs the image-generation transition for a WRITTEN item.
// Unlike content generation there is no interstitial stage change; the item
// stays WRITTEN until the outcome is known.
func (d *Driver) GenerateImage(ctx context.Context, v *models.Video) error {
	done := d.tracker.Begin(d.agents.ImageAgentID)
	defer done()

	if err := store.Record(d.db, v.Title, "Image generation started", models.ResultSuccess, ""); err != nil {
		return err
	}

	res, err := d.agent.Invoke(ctx, imageMessage(v), d.agents.ImageAgentID)
	if err != nil {
		return d.fail(ctx, v, StepImageGeneration, "Image generation failed", err.Error())
	}
	if !res.Success {
		return d.fail(ctx, v, StepImageGeneration, "Image generation failed", firstNonEmpty(res.Error, genericImageError))
	}

	// The image URL rides in module outputs; alt text in the result payload.
	// Both degrade to fallbacks rather than failing the transition.
	altText := ""
	if img, err := agent.DecodeImage(res); err == nil {
		altText = img.AltText
	}
	altText = firstNonEmpty(altText, v.MetaTitle, v.Title)

	if err := store.ApplyPatch(d.db, v.ID, store.Patch{
		Stage:            store.String(models.StageReadyToPost),
		FeaturedImageURL: store.String(res.FirstArtifactURL()),
		ImageAltText:     store.String(altText),
		LastStep:         store.String(string(StepImageGeneration)),
	}); err != nil {
		return err
	}
	return store.Record(d.db, v.Title, "Image generated successfully", models.ResultSuccess, "")
}

// MarkReady advances a WRITTEN item to READY_TO_POST with no external call.
func (d *Driver) MarkReady(v *models.Video) error {
	if err := store.ApplyPatch(d.db, v.ID, store.Patch{
		Stage: store.String(models.StageReadyToPost),
	}); err != nil {
		return err
	}
	return store.Record(d.db, v.Title, "Marked as ready to post", models.ResultSuccess, "")
}

// Publish runs the terminal publish transition for a READY_TO_POST item.
func (d *Driver) Publish(ctx context.Context, v *models.Video) error {
	done := d.tracker.Begin(d.agents.PublisherAgentID)
	defer done()

	if err := store.Record(d.db, v.Title, "Publishing to WordPress", models.ResultSuccess, ""); err != nil {
		return err
	}

	res, err := d.agent.Invoke(ctx, publishMessage(v), d.agents.PublisherAgentID)
	if err != nil {
		return d.fail(ctx, v, StepPublishing, "Publishing failed", err.Error())
	}
	if !res.Success || !res.HasResult() {
		msg := firstNonEmpty(res.Error, publishErrorMessage(res), genericPublishError)
		return d.fail(ctx, v, StepPublishing, "Publishing failed", msg)
	}

	pub, err := agent.DecodePublish(res)
	if err != nil {
		return d.fail(ctx, v, StepPublishing, "Publishing failed", genericPublishError)
	}

	publishedAt := time.Now()
	if ts, err := time.Parse(time.RFC3339, pub.PublishedAt); err == nil {
		publishedAt = ts
	}

	if err := store.ApplyPatch(d.db, v.ID, store.Patch{
		Stage:         store.String(models.StagePosted),
		WPPostID:      store.String(pub.WPPostID),
		PostURL:       store.String(pub.PostURL),
		PublishedAtWP: store.Time(publishedAt),
		LastStep:      store.String(string(StepPublishing)),
	}); err != nil {
		return err
	}
	if err := store.Record(d.db, v.Title, "Published to WordPress", models.ResultSuccess, ""); err != nil {
		return err
	}
	d.notify(ctx, notify.Event{
		Title:    fmt.Sprintf("Published %q to WordPress", v.Title),
		Body:     pub.PostURL,
		Severity: notify.SeveritySuccess,
	})
	return nil
}

// Retry routes a failed item back into the pipeline based on its last step.
// Publish and image failures only rewind the stage and clear the error; the
// user re-triggers by hand. Content failures rewind to NEW and re-run
// content generation immediately.
func (d *Driver) Retry(ctx context.Context, v *models.Video) error {
	switch Step(v.LastStep) {
	case StepPublishing, StepImageGeneration:
		return store.ApplyPatch(d.db, v.ID, store.Patch{
			Stage:     store.String(Step(v.LastStep).RetryTarget()),
			LastError: store.String(""),
		})
	default:
		rewound := *v
		rewound.Stage = models.StageNew
		return d.GenerateContent(ctx, &rewound)
	}
}

// fail absorbs a step failure into the item: ERROR stage, error message,
// failing step, retry counter bumped from the invocation snapshot.
func (d *Driver) fail(ctx context.Context, v *models.Video, step Step, action, errMsg string) error {
	if err := store.ApplyPatch(d.db, v.ID, store.Patch{
		Stage:      store.String(models.StageError),
		LastError:  store.String(errMsg),
		LastStep:   store.String(string(step)),
		RetryCount: store.Int(v.RetryCount + 1),
	}); err != nil {
		return err
	}
	if err := store.Record(d.db, v.Title, action, models.ResultError, errMsg); err != nil {
		return err
	}
	d.notify(ctx, notify.Event{
		Title:    fmt.Sprintf("%s: %s", action, v.Title),
		Body:     errMsg,
		Severity: notify.SeverityError,
	})
	return nil
}

// notify delivers a chat notification best-effort.
func (d *Driver) notify(ctx context.Context, ev notify.Event) {
	if d.notifier == nil {
		return
	}
	if err := d.notifier.Notify(ctx, ev); err != nil {
		log.Printf("pipeline: notify warning: %v", err)
	}
}

// publishErrorMessage digs the publisher capability's error_message out of a
// failed result, if any.
func publishErrorMessage(res *agent.Result) string {
	if !res.HasResult() {
		return ""
	}
	pub, err := agent.DecodePublish(res)
	if err != nil {
		return ""
	}
	return pub.ErrorMessage
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
