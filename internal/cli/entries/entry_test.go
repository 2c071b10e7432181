package entries

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tLat87/SportJournal/internal/cli"
	"github.com/tLat87/SportJournal/internal/config"
	apperrors "github.com/tLat87/SportJournal/internal/errors"
	"github.com/tLat87/SportJournal/internal/models"
	"github.com/tLat87/SportJournal/internal/state"
	"github.com/tLat87/SportJournal/internal/storage"
)

var testNow = time.Date(2024, time.March, 15, 18, 30, 0, 0, time.UTC)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	dir := t.TempDir()

	store := storage.NewJSONStore(filepath.Join(dir, "sportjournal.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	cfg, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg.Backup.Automatic = false

	container := state.New(
		state.WithClock(func() time.Time { return testNow }),
		state.WithPersister(store),
	)
	return &cli.Context{Store: store, Container: container, Config: cfg}
}

func TestEntryAddCmd(t *testing.T) {
	ctx := setupTestContext(t)

	cmd := &EntryAddCmd{Name: "  Morning Run ", Description: "5k easy", Duration: 30, Intensity: "Medium", Tags: []string{"outdoor"}}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("EntryAddCmd.Run() error = %v", err)
	}

	entries := ctx.State().Journal.Entries
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.ActivityName != "Morning Run" {
		t.Errorf("ActivityName = %q, want %q", e.ActivityName, "Morning Run")
	}
	if e.Time != "18:30" {
		t.Errorf("Time = %q, want 18:30", e.Time)
	}
	if !e.Date.Equal(testNow) {
		t.Errorf("Date = %v, want %v", e.Date, testNow)
	}
	if e.CreatedAt != testNow.UnixMilli() {
		t.Errorf("CreatedAt = %d, want %d", e.CreatedAt, testNow.UnixMilli())
	}
	if e.Intensity != models.IntensityMedium {
		t.Errorf("Intensity = %q, want medium", e.Intensity)
	}

	snap, err := ctx.Store.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if !strings.Contains(string(snap["journal"]), "Morning Run") {
		t.Errorf("persisted journal = %s, want the new entry", snap["journal"])
	}
}

func TestEntryAddCmd_Validation(t *testing.T) {
	ctx := setupTestContext(t)

	tests := []EntryAddCmd{
		{Name: "   "},
		{Name: "Run", Intensity: "extreme"},
		{Name: "Run", Duration: -5},
		{Name: "Run", Date: "15/03/2024"},
	}
	for _, cmd := range tests {
		err := cmd.Run(ctx)
		if !errors.Is(err, models.ErrValidation) {
			t.Errorf("Run(%+v) error = %v, want validation error", cmd, err)
		}
	}
	if n := len(ctx.State().Journal.Entries); n != 0 {
		t.Errorf("entries = %d after rejected adds, want 0", n)
	}
}

func TestEntryAddCmd_Photo(t *testing.T) {
	ctx := setupTestContext(t)

	photo := filepath.Join(t.TempDir(), "run.jpg")
	if err := os.WriteFile(photo, []byte("jpeg"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := (&EntryAddCmd{Name: "Run", Photo: photo}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	e := ctx.State().Journal.Entries[0]
	if !strings.HasPrefix(e.PhotoURI, "file://"+ctx.MediaLibrary().Dir) {
		t.Errorf("PhotoURI = %q, want a copy in %s", e.PhotoURI, ctx.MediaLibrary().Dir)
	}

	// A failing picker leaves the journal untouched.
	bad := &EntryAddCmd{Name: "Swim", Photo: filepath.Join(t.TempDir(), "missing.png")}
	if err := bad.Run(ctx); err == nil {
		t.Fatal("Run() with missing photo expected error")
	}
	if n := len(ctx.State().Journal.Entries); n != 1 {
		t.Errorf("entries = %d, want 1", n)
	}
}

func TestEntryEditAndDelete(t *testing.T) {
	ctx := setupTestContext(t)
	entry := models.JournalEntry{ID: "abc123", ActivityName: "Gym", Date: testNow}
	if err := ctx.Dispatch(state.AddEntry{Entry: entry}); err != nil {
		t.Fatal(err)
	}

	name, duration := "Gym Session", 45
	if err := (&EntryEditCmd{ID: "abc", Name: &name, Duration: &duration}).Run(ctx); err != nil {
		t.Fatalf("EntryEditCmd.Run() error = %v", err)
	}
	got, _ := ctx.State().Journal.Find("abc123")
	if got.ActivityName != name || got.Duration != duration {
		t.Errorf("edited entry = %+v", got)
	}

	blank := ""
	if err := (&EntryEditCmd{ID: "abc123", Name: &blank}).Run(ctx); !errors.Is(err, models.ErrValidation) {
		t.Errorf("blank name error = %v, want validation error", err)
	}

	if err := (&EntryDeleteCmd{ID: "nope"}).Run(ctx); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("delete unknown error = %v, want not found", err)
	}
	if err := (&EntryDeleteCmd{ID: "abc123"}).Run(ctx); err != nil {
		t.Fatalf("EntryDeleteCmd.Run() error = %v", err)
	}
	if n := len(ctx.State().Journal.Entries); n != 0 {
		t.Errorf("entries = %d after delete, want 0", n)
	}
}

func TestSplitTags(t *testing.T) {
	got := splitTags(" a, ,b ,c")
	if strings.Join(got, "|") != "a|b|c" {
		t.Errorf("splitTags() = %v, want [a b c]", got)
	}
	if splitTags("") != nil {
		t.Error("splitTags(\"\") should be nil")
	}
}
