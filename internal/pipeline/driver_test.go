package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/contentflowhq/contentflow/internal/agent"
	"github.com/contentflowhq/contentflow/internal/config"
	"github.com/contentflowhq/contentflow/internal/models"
	"github.com/contentflowhq/contentflow/internal/notify"
	"github.com/contentflowhq/contentflow/internal/store"
)

var testAgents = config.AgentConfig{
	ContentAgentID:   "cap-content",
	ImageAgentID:     "cap-image",
	PublisherAgentID: "cap-publish",
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Video{}, &models.Activity{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func newTestDriver(t *testing.T, db *gorm.DB, mock *agent.MockInvoker) *Driver {
	t.Helper()
	d, err := New(Opts{DB: db, Agent: mock, Agents: testAgents})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func seedVideo(t *testing.T, db *gorm.DB, stage string) *models.Video {
	t.Helper()
	v, err := store.Create(db, store.CreateOpts{
		VideoID:     "dQw4w9WgXcQ",
		Title:       "Test Video",
		ChannelName: "Test Channel",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if stage != models.StageNew {
		if err := store.ApplyPatch(db, v.ID, store.Patch{Stage: store.String(stage)}); err != nil {
			t.Fatalf("ApplyPatch: %v", err)
		}
		v.Stage = stage
	}
	return v
}

func reload(t *testing.T, db *gorm.DB, id string) *models.Video {
	t.Helper()
	v, err := store.Get(db, id)
	if err != nil {
		t.Fatalf("Get(%q): %v", id, err)
	}
	return v
}

func articleResult() *agent.Result {
	payload, _ := json.Marshal(map[string]interface{}{
		"html_body":            "<p>Full article body</p>",
		"meta_title":           "Great Article",
		"meta_description":     "A description",
		"slug":                 "great-article",
		"faq_schema_json":      `{"@type":"FAQPage"}`,
		"seo_structure":        map[string]string{"h1": "Great Article"},
		"word_count":           1200,
		"reading_time_minutes": 6,
	})
	return &agent.Result{
		Success:  true,
		Response: &agent.Response{Result: payload},
	}
}

func TestGenerateContent_Success(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	mock.Script(testAgents.ContentAgentID, articleResult())
	d := newTestDriver(t, db, mock)

	v := seedVideo(t, db, models.StageNew)
	if err := d.GenerateContent(context.Background(), v); err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}

	got := reload(t, db, v.ID)
	if got.Stage != models.StageWritten {
		t.Errorf("stage = %q, want %q", got.Stage, models.StageWritten)
	}
	if got.HTMLBody != "<p>Full article body</p>" {
		t.Errorf("html_body = %q", got.HTMLBody)
	}
	if got.MetaTitle != "Great Article" {
		t.Errorf("meta_title = %q", got.MetaTitle)
	}
	if got.Slug != "great-article" {
		t.Errorf("slug = %q", got.Slug)
	}
	if got.WordCount != 1200 || got.ReadingTimeMinutes != 6 {
		t.Errorf("word_count = %d, reading_time = %d", got.WordCount, got.ReadingTimeMinutes)
	}
	if !strings.Contains(got.SEOStructure, "Great Article") {
		t.Errorf("seo_structure = %q", got.SEOStructure)
	}
	if got.LastStep != string(StepContentGeneration) {
		t.Errorf("last_step = %q", got.LastStep)
	}
	if got.RetryCount != 0 {
		t.Errorf("retry_count = %d, want 0", got.RetryCount)
	}
}

func TestGenerateContent_PromptFields(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	mock.Script(testAgents.ContentAgentID, articleResult())
	d := newTestDriver(t, db, mock)

	v := seedVideo(t, db, models.StageNew)
	if err := d.GenerateContent(context.Background(), v); err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if len(mock.Calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(mock.Calls))
	}
	msg := mock.Calls[0].Message
	for _, want := range []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"Video Title: Test Video",
		"Channel: Test Channel",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

// peekInvoker snapshots the stored video at the moment the agent is called.
type peekInvoker struct {
	db         *gorm.DB
	id         string
	res        *agent.Result
	midCall    *models.Video
	midActions []string
}

func (p *peekInvoker) Invoke(ctx context.Context, message, capabilityID string) (*agent.Result, error) {
	v, err := store.Get(p.db, p.id)
	if err != nil {
		return nil, err
	}
	p.midCall = v
	entries, err := store.RecentActivity(p.db, 10)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		p.midActions = append(p.midActions, e.Action)
	}
	return p.res, nil
}

func TestGenerateContent_TranscribedDuringAgentCall(t *testing.T) {
	db := openTestDB(t)
	v := seedVideo(t, db, models.StageNew)
	peek := &peekInvoker{db: db, id: v.ID, res: articleResult()}
	d, err := New(Opts{DB: db, Agent: peek, Agents: testAgents})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := d.GenerateContent(context.Background(), v); err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}

	if peek.midCall == nil {
		t.Fatal("agent was never invoked")
	}
	if peek.midCall.Stage != models.StageTranscribed {
		t.Errorf("stage during agent call = %q, want %q", peek.midCall.Stage, models.StageTranscribed)
	}
	if peek.midCall.LastStep != string(StepContentGeneration) {
		t.Errorf("last_step during agent call = %q, want %q", peek.midCall.LastStep, StepContentGeneration)
	}

	var started bool
	for _, action := range peek.midActions {
		if action == "Content generation started" {
			started = true
		}
	}
	if !started {
		t.Errorf("started entry missing at call time, activity = %v", peek.midActions)
	}
}

func TestGenerateContent_AgentFailure(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	mock.Script(testAgents.ContentAgentID, &agent.Result{
		Success: false,
		Error:   "model overloaded",
	})
	d := newTestDriver(t, db, mock)

	v := seedVideo(t, db, models.StageNew)
	if err := d.GenerateContent(context.Background(), v); err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}

	got := reload(t, db, v.ID)
	if got.Stage != models.StageError {
		t.Errorf("stage = %q, want %q", got.Stage, models.StageError)
	}
	if got.LastError != "model overloaded" {
		t.Errorf("last_error = %q", got.LastError)
	}
	if got.LastStep != string(StepContentGeneration) {
		t.Errorf("last_step = %q", got.LastStep)
	}
	if got.RetryCount != 1 {
		t.Errorf("retry_count = %d, want 1", got.RetryCount)
	}
}

func TestGenerateContent_SuccessWithoutPayload(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	mock.Script(testAgents.ContentAgentID, &agent.Result{Success: true})
	d := newTestDriver(t, db, mock)

	v := seedVideo(t, db, models.StageNew)
	if err := d.GenerateContent(context.Background(), v); err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}

	got := reload(t, db, v.ID)
	if got.Stage != models.StageError {
		t.Errorf("stage = %q, want %q", got.Stage, models.StageError)
	}
	if got.LastError != "Content generation failed" {
		t.Errorf("last_error = %q", got.LastError)
	}
}

func TestGenerateContent_TransportError(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	mock.ScriptError(testAgents.ContentAgentID, errors.New("connection refused"))
	d := newTestDriver(t, db, mock)

	v := seedVideo(t, db, models.StageNew)
	if err := d.GenerateContent(context.Background(), v); err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}

	got := reload(t, db, v.ID)
	if got.Stage != models.StageError {
		t.Errorf("stage = %q, want %q", got.Stage, models.StageError)
	}
	if got.RetryCount != 1 {
		t.Errorf("retry_count = %d, want 1", got.RetryCount)
	}
}

func TestGenerateImage_Success(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	payload, _ := json.Marshal(map[string]string{"alt_text": "An infographic"})
	mock.Script(testAgents.ImageAgentID, &agent.Result{
		Success:  true,
		Response: &agent.Response{Result: payload},
		ModuleOutputs: &agent.ModuleOutputs{
			ArtifactFiles: []agent.ArtifactFile{{FileURL: "https://cdn.example.com/img.png"}},
		},
	})
	d := newTestDriver(t, db, mock)

	v := seedVideo(t, db, models.StageWritten)
	if err := d.GenerateImage(context.Background(), v); err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}

	got := reload(t, db, v.ID)
	if got.Stage != models.StageReadyToPost {
		t.Errorf("stage = %q, want %q", got.Stage, models.StageReadyToPost)
	}
	if got.FeaturedImageURL != "https://cdn.example.com/img.png" {
		t.Errorf("featured_image_url = %q", got.FeaturedImageURL)
	}
	if got.ImageAltText != "An infographic" {
		t.Errorf("image_alt_text = %q", got.ImageAltText)
	}
}

func TestGenerateImage_AltTextFallback(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	// Success without a result payload still advances the item; alt text
	// falls back to the meta title.
	mock.Script(testAgents.ImageAgentID, &agent.Result{Success: true})
	d := newTestDriver(t, db, mock)

	v := seedVideo(t, db, models.StageWritten)
	if err := store.ApplyPatch(db, v.ID, store.Patch{MetaTitle: store.String("Fallback Title")}); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	v.MetaTitle = "Fallback Title"
	if err := d.GenerateImage(context.Background(), v); err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}

	got := reload(t, db, v.ID)
	if got.Stage != models.StageReadyToPost {
		t.Errorf("stage = %q, want %q", got.Stage, models.StageReadyToPost)
	}
	if got.ImageAltText != "Fallback Title" {
		t.Errorf("image_alt_text = %q", got.ImageAltText)
	}
	if got.FeaturedImageURL != "" {
		t.Errorf("featured_image_url = %q, want empty", got.FeaturedImageURL)
	}
}

func TestGenerateImage_Failure(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	mock.Script(testAgents.ImageAgentID, &agent.Result{Success: false, Error: "render timeout"})
	d := newTestDriver(t, db, mock)

	v := seedVideo(t, db, models.StageWritten)
	if err := d.GenerateImage(context.Background(), v); err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}

	got := reload(t, db, v.ID)
	if got.Stage != models.StageError {
		t.Errorf("stage = %q, want %q", got.Stage, models.StageError)
	}
	if got.LastStep != string(StepImageGeneration) {
		t.Errorf("last_step = %q", got.LastStep)
	}
}

func TestMarkReady(t *testing.T) {
	db := openTestDB(t)
	d := newTestDriver(t, db, agent.NewMock())

	v := seedVideo(t, db, models.StageWritten)
	if err := d.MarkReady(v); err != nil {
		t.Fatalf("MarkReady: %v", err)
	}
	got := reload(t, db, v.ID)
	if got.Stage != models.StageReadyToPost {
		t.Errorf("stage = %q, want %q", got.Stage, models.StageReadyToPost)
	}
}

func TestPublish_Success(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	payload, _ := json.Marshal(map[string]string{
		"wp_post_id":   "4821",
		"post_url":     "https://blog.example.com/great-article",
		"published_at": "2026-08-30T10:00:00Z",
	})
	mock.Script(testAgents.PublisherAgentID, &agent.Result{
		Success:  true,
		Response: &agent.Response{Result: payload},
	})
	notifier := &notify.Mock{}
	d, err := New(Opts{DB: db, Agent: mock, Agents: testAgents, Notifier: notifier})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	v := seedVideo(t, db, models.StageReadyToPost)
	if err := d.Publish(context.Background(), v); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	got := reload(t, db, v.ID)
	if got.Stage != models.StagePosted {
		t.Errorf("stage = %q, want %q", got.Stage, models.StagePosted)
	}
	if got.WPPostID != "4821" {
		t.Errorf("wp_post_id = %q", got.WPPostID)
	}
	if got.PostURL != "https://blog.example.com/great-article" {
		t.Errorf("post_url = %q", got.PostURL)
	}
	if got.PublishedAtWP == nil {
		t.Error("published_at_wp not set")
	}
	if notifier.Count() != 1 {
		t.Errorf("notifications = %d, want 1", notifier.Count())
	}
}

func TestPublish_BodyTruncatedInPrompt(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	payload, _ := json.Marshal(map[string]string{"wp_post_id": "1", "post_url": "u"})
	mock.Script(testAgents.PublisherAgentID, &agent.Result{
		Success:  true,
		Response: &agent.Response{Result: payload},
	})
	d := newTestDriver(t, db, mock)

	v := seedVideo(t, db, models.StageReadyToPost)
	long := strings.Repeat("x", 2000)
	if err := store.ApplyPatch(db, v.ID, store.Patch{HTMLBody: store.String(long)}); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	v.HTMLBody = long

	if err := d.Publish(context.Background(), v); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	msg := mock.Calls[0].Message
	if !strings.Contains(msg, strings.Repeat("x", 500)+"...") {
		t.Error("prompt does not contain truncated body")
	}
	if strings.Contains(msg, strings.Repeat("x", 501)) {
		t.Error("prompt contains more than 500 body characters")
	}
}

func TestPublish_TruncationKeepsRunesIntact(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	payload, _ := json.Marshal(map[string]string{"wp_post_id": "1", "post_url": "u"})
	mock.Script(testAgents.PublisherAgentID, &agent.Result{
		Success:  true,
		Response: &agent.Response{Result: payload},
	})
	d := newTestDriver(t, db, mock)

	v := seedVideo(t, db, models.StageReadyToPost)
	// The three-byte rune straddles the 500-byte cut point.
	long := strings.Repeat("x", 499) + strings.Repeat("日", 200)
	if err := store.ApplyPatch(db, v.ID, store.Patch{HTMLBody: store.String(long)}); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	v.HTMLBody = long

	if err := d.Publish(context.Background(), v); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	msg := mock.Calls[0].Message
	if !utf8.ValidString(msg) {
		t.Error("prompt contains invalid UTF-8")
	}
	if !strings.Contains(msg, strings.Repeat("x", 499)+"...") {
		t.Error("cut did not back up to the rune boundary")
	}
}

func TestPublish_Failure(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	mock.Script(testAgents.PublisherAgentID, &agent.Result{
		Success: false,
		Error:   "wordpress: 503 service unavailable",
	})
	d := newTestDriver(t, db, mock)

	v := seedVideo(t, db, models.StageReadyToPost)
	if err := d.Publish(context.Background(), v); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	got := reload(t, db, v.ID)
	if got.Stage != models.StageError {
		t.Errorf("stage = %q, want %q", got.Stage, models.StageError)
	}
	if got.LastError != "wordpress: 503 service unavailable" {
		t.Errorf("last_error = %q", got.LastError)
	}
	if got.LastStep != string(StepPublishing) {
		t.Errorf("last_step = %q", got.LastStep)
	}
	if got.RetryCount != 1 {
		t.Errorf("retry_count = %d, want 1", got.RetryCount)
	}
}

func TestPublish_ErrorMessageFallback(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	payload, _ := json.Marshal(map[string]string{"error_message": "duplicate post detected"})
	mock.Script(testAgents.PublisherAgentID, &agent.Result{
		Success:  false,
		Response: &agent.Response{Result: payload},
	})
	d := newTestDriver(t, db, mock)

	v := seedVideo(t, db, models.StageReadyToPost)
	if err := d.Publish(context.Background(), v); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	got := reload(t, db, v.ID)
	if got.LastError != "duplicate post detected" {
		t.Errorf("last_error = %q", got.LastError)
	}
}

func TestRetry_AfterPublishFailure(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	d := newTestDriver(t, db, mock)

	v := seedVideo(t, db, models.StageReadyToPost)
	if err := store.ApplyPatch(db, v.ID, store.Patch{
		Stage:      store.String(models.StageError),
		LastError:  store.String("wordpress down"),
		LastStep:   store.String(string(StepPublishing)),
		RetryCount: store.Int(1),
	}); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	v = reload(t, db, v.ID)

	if err := d.Retry(context.Background(), v); err != nil {
		t.Fatalf("Retry: %v", err)
	}

	got := reload(t, db, v.ID)
	if got.Stage != models.StageReadyToPost {
		t.Errorf("stage = %q, want %q", got.Stage, models.StageReadyToPost)
	}
	if got.LastError != "" {
		t.Errorf("last_error = %q, want cleared", got.LastError)
	}
	// Rewind only; no agent call.
	if len(mock.Calls) != 0 {
		t.Errorf("agent calls = %d, want 0", len(mock.Calls))
	}
	if got.RetryCount != 1 {
		t.Errorf("retry_count = %d, want 1 (unchanged)", got.RetryCount)
	}
}

func TestRetry_AfterImageFailure(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	d := newTestDriver(t, db, mock)

	v := seedVideo(t, db, models.StageWritten)
	if err := store.ApplyPatch(db, v.ID, store.Patch{
		Stage:      store.String(models.StageError),
		LastError:  store.String("render timeout"),
		LastStep:   store.String(string(StepImageGeneration)),
		RetryCount: store.Int(2),
	}); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	v = reload(t, db, v.ID)

	if err := d.Retry(context.Background(), v); err != nil {
		t.Fatalf("Retry: %v", err)
	}

	got := reload(t, db, v.ID)
	if got.Stage != models.StageWritten {
		t.Errorf("stage = %q, want %q", got.Stage, models.StageWritten)
	}
	if len(mock.Calls) != 0 {
		t.Errorf("agent calls = %d, want 0", len(mock.Calls))
	}
}

func TestRetry_AfterContentFailure(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	mock.Script(testAgents.ContentAgentID, articleResult())
	d := newTestDriver(t, db, mock)

	v := seedVideo(t, db, models.StageNew)
	if err := store.ApplyPatch(db, v.ID, store.Patch{
		Stage:      store.String(models.StageError),
		LastError:  store.String("model overloaded"),
		LastStep:   store.String(string(StepContentGeneration)),
		RetryCount: store.Int(1),
	}); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	v = reload(t, db, v.ID)

	if err := d.Retry(context.Background(), v); err != nil {
		t.Fatalf("Retry: %v", err)
	}

	// Content retries re-run the generation step immediately.
	if len(mock.Calls) != 1 {
		t.Fatalf("agent calls = %d, want 1", len(mock.Calls))
	}
	got := reload(t, db, v.ID)
	if got.Stage != models.StageWritten {
		t.Errorf("stage = %q, want %q", got.Stage, models.StageWritten)
	}
	if got.RetryCount != 1 {
		t.Errorf("retry_count = %d, want 1 (unchanged on success)", got.RetryCount)
	}
}

func TestRetry_ContentFailsAgain(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	mock.Script(testAgents.ContentAgentID, &agent.Result{Success: false, Error: "still overloaded"})
	d := newTestDriver(t, db, mock)

	v := seedVideo(t, db, models.StageNew)
	if err := store.ApplyPatch(db, v.ID, store.Patch{
		Stage:      store.String(models.StageError),
		LastError:  store.String("model overloaded"),
		LastStep:   store.String(string(StepContentGeneration)),
		RetryCount: store.Int(1),
	}); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	v = reload(t, db, v.ID)

	if err := d.Retry(context.Background(), v); err != nil {
		t.Fatalf("Retry: %v", err)
	}

	got := reload(t, db, v.ID)
	if got.Stage != models.StageError {
		t.Errorf("stage = %q, want %q", got.Stage, models.StageError)
	}
	if got.RetryCount != 2 {
		t.Errorf("retry_count = %d, want 2", got.RetryCount)
	}
	if got.LastError != "still overloaded" {
		t.Errorf("last_error = %q", got.LastError)
	}
}

func TestFailure_PreservesContentFields(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	mock.Script(testAgents.PublisherAgentID, &agent.Result{Success: false, Error: "boom"})
	d := newTestDriver(t, db, mock)

	v := seedVideo(t, db, models.StageReadyToPost)
	if err := store.ApplyPatch(db, v.ID, store.Patch{
		HTMLBody:  store.String("<p>body</p>"),
		MetaTitle: store.String("Kept Title"),
		Slug:      store.String("kept-slug"),
	}); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	v = reload(t, db, v.ID)

	if err := d.Publish(context.Background(), v); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	got := reload(t, db, v.ID)
	if got.Stage != models.StageError {
		t.Fatalf("stage = %q, want %q", got.Stage, models.StageError)
	}
	if got.HTMLBody != "<p>body</p>" || got.MetaTitle != "Kept Title" || got.Slug != "kept-slug" {
		t.Errorf("content fields clobbered: body=%q title=%q slug=%q",
			got.HTMLBody, got.MetaTitle, got.Slug)
	}
}

func TestDriver_RecordsActivity(t *testing.T) {
	db := openTestDB(t)
	mock := agent.NewMock()
	mock.Script(testAgents.ContentAgentID, articleResult())
	d := newTestDriver(t, db, mock)

	v := seedVideo(t, db, models.StageNew)
	if err := d.GenerateContent(context.Background(), v); err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}

	entries, err := store.RecentActivity(db, 0)
	if err != nil {
		t.Fatalf("RecentActivity: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("activity entries = %d, want 2", len(entries))
	}
	if entries[0].Action != "Content generated successfully" {
		t.Errorf("newest action = %q", entries[0].Action)
	}
	if entries[1].Action != "Content generation started" {
		t.Errorf("oldest action = %q", entries[1].Action)
	}
}
