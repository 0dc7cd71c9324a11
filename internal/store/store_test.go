package store

import (
	"strings"
	"testing"
	"time"

	"github.com/contentflowhq/contentflow/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func mustCreate(t *testing.T, db *gorm.DB, opts CreateOpts) *models.Video {
	t.Helper()
	v, err := Create(db, opts)
	if err != nil {
		t.Fatalf("Create(%q): %v", opts.Title, err)
	}
	return v
}

func TestGenerateID_Format(t *testing.T) {
	id, err := GenerateID()
	if err != nil {
		t.Fatalf("GenerateID() error: %v", err)
	}
	if !strings.HasPrefix(id, "vid-") {
		t.Errorf("ID %q missing vid- prefix", id)
	}
	// vid- (4 chars) + 5 hex chars = 9 total
	if len(id) != 9 {
		t.Errorf("ID length = %d, want 9; id = %q", len(id), id)
	}
}

func TestGenerateID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := GenerateID()
		if err != nil {
			t.Fatalf("GenerateID() iteration %d: %v", i, err)
		}
		if seen[id] {
			t.Fatalf("duplicate ID %q on iteration %d", id, i)
		}
		seen[id] = true
	}
}

func TestCreate_Defaults(t *testing.T) {
	db := openTestDB(t)
	v := mustCreate(t, db, CreateOpts{
		VideoID:     "dQw4w9WgXcQ",
		Title:       "10 Advanced Python Tricks",
		ChannelName: "Code Masters",
		Views:       245000,
	})

	if v.Stage != models.StageNew {
		t.Errorf("Stage = %q, want NEW", v.Stage)
	}
	if v.RetryCount != 0 {
		t.Errorf("RetryCount = %d, want 0", v.RetryCount)
	}
	if !models.ValidStage(v.Stage) {
		t.Errorf("stage %q not in the valid stage set", v.Stage)
	}
}

func TestCreate_RequiresTitle(t *testing.T) {
	db := openTestDB(t)
	if _, err := Create(db, CreateOpts{VideoID: "x"}); err == nil {
		t.Fatal("expected error for missing title")
	}
}

func TestList_StageFilterAndSort(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"alpha", "bravo", "charlie"} {
		v := mustCreate(t, db, CreateOpts{
			Title:       title,
			PublishedAt: base.AddDate(0, 0, i),
			Views:       (i + 1) * 100,
		})
		if title == "charlie" {
			if err := ApplyPatch(db, v.ID, Patch{Stage: String(models.StageWritten)}); err != nil {
				t.Fatalf("patch stage: %v", err)
			}
		}
	}

	newOnly, err := List(db, ListFilters{Stage: models.StageNew, SortField: "views", SortAsc: true})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(newOnly) != 2 {
		t.Fatalf("len(newOnly) = %d, want 2", len(newOnly))
	}
	if newOnly[0].Views != 100 || newOnly[1].Views != 200 {
		t.Errorf("views order = %d,%d, want 100,200", newOnly[0].Views, newOnly[1].Views)
	}

	byDate, err := List(db, ListFilters{})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if byDate[0].Title != "charlie" {
		t.Errorf("default sort newest-first: got %q first", byDate[0].Title)
	}

	if _, err := List(db, ListFilters{SortField: "retry_count"}); err == nil {
		t.Error("expected error for unknown sort field")
	}
}

func TestRemove(t *testing.T) {
	db := openTestDB(t)
	v := mustCreate(t, db, CreateOpts{Title: "doomed"})

	if err := Remove(db, v.ID); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if _, err := Get(db, v.ID); err == nil {
		t.Error("Get() after Remove() should fail")
	}
	if err := Remove(db, v.ID); err == nil {
		t.Error("second Remove() should fail")
	}
}

func TestErrors_DerivedView(t *testing.T) {
	db := openTestDB(t)
	ok := mustCreate(t, db, CreateOpts{Title: "fine"})
	bad := mustCreate(t, db, CreateOpts{Title: "broken"})

	errs, err := Errors(db)
	if err != nil {
		t.Fatalf("Errors() error: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("len(errs) = %d, want 0", len(errs))
	}

	if err := ApplyPatch(db, bad.ID, Patch{
		Stage:     String(models.StageError),
		LastError: String("boom"),
		LastStep:  String("publishing"),
	}); err != nil {
		t.Fatalf("patch: %v", err)
	}

	errs, err = Errors(db)
	if err != nil {
		t.Fatalf("Errors() error: %v", err)
	}
	if len(errs) != 1 || errs[0].ID != bad.ID {
		t.Fatalf("Errors() = %v, want only %s", errs, bad.ID)
	}
	_ = ok
}

func TestStageCounts(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 3; i++ {
		mustCreate(t, db, CreateOpts{Title: "n"})
	}
	v := mustCreate(t, db, CreateOpts{Title: "p"})
	if err := ApplyPatch(db, v.ID, Patch{Stage: String(models.StagePosted)}); err != nil {
		t.Fatalf("patch: %v", err)
	}

	counts, err := StageCounts(db)
	if err != nil {
		t.Fatalf("StageCounts() error: %v", err)
	}
	if counts[models.StageNew] != 3 {
		t.Errorf("NEW count = %d, want 3", counts[models.StageNew])
	}
	if counts[models.StagePosted] != 1 {
		t.Errorf("POSTED count = %d, want 1", counts[models.StagePosted])
	}
	// Empty stages are present with zero counts.
	if got, ok := counts[models.StageTranscribed]; !ok || got != 0 {
		t.Errorf("TRANSCRIBED count = %d (present=%v), want 0 present", got, ok)
	}
	if len(counts) != len(models.AllStages) {
		t.Errorf("len(counts) = %d, want %d", len(counts), len(models.AllStages))
	}
}
