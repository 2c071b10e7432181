package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tLat87/SportJournal/internal/cli"
	"github.com/tLat87/SportJournal/internal/models"
	"github.com/tLat87/SportJournal/internal/state"
	"github.com/tLat87/SportJournal/internal/storage"
)

func setupTestInitDB(t *testing.T, name string) (*cli.Context, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	store, err := storage.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	container := state.New(state.WithPersister(store))
	return &cli.Context{Store: store, Container: container}, path
}

func TestInitCmd_Success(t *testing.T) {
	for _, name := range []string{"test.db", "test.json"} {
		t.Run(name, func(t *testing.T) {
			ctx, path := setupTestInitDB(t, name)

			if err := (&InitCmd{}).Run(ctx); err != nil {
				t.Fatalf("init command failed: %v", err)
			}
			if _, err := os.Stat(path); os.IsNotExist(err) {
				t.Fatalf("store was not created at %s", path)
			}

			snap, err := ctx.Store.LoadSnapshot()
			if err != nil {
				t.Fatal(err)
			}
			if _, ok := snap["goals"]; !ok {
				t.Error("init did not persist the seeded goals")
			}
		})
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _ := setupTestInitDB(t, "test.db")
	cmd := &InitCmd{}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	entry := models.JournalEntry{ID: "keep-me", ActivityName: "Run", Date: time.Now()}
	if err := ctx.Dispatch(state.AddEntry{Entry: entry}); err != nil {
		t.Fatal(err)
	}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("second init failed (should be idempotent): %v", err)
	}
	if _, ok := ctx.State().Journal.Find("keep-me"); !ok {
		t.Error("second init lost an existing entry")
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, _ := setupTestInitDB(t, "test.json")

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}
	entry := models.JournalEntry{ID: "gone", ActivityName: "Run", Date: time.Now()}
	if err := ctx.Dispatch(state.AddEntry{Entry: entry}); err != nil {
		t.Fatal(err)
	}

	ctx.Container = state.New(state.WithPersister(ctx.Store))
	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("force init failed: %v", err)
	}
	if _, ok := ctx.State().Journal.Find("gone"); ok {
		t.Error("force init kept an entry from the deleted store")
	}
}

func TestInitCmd_Source(t *testing.T) {
	src, srcPath := setupTestInitDB(t, "source.db")
	if err := (&InitCmd{}).Run(src); err != nil {
		t.Fatal(err)
	}
	entry := models.JournalEntry{ID: "copied", ActivityName: "Swim", Date: time.Now()}
	if err := src.Dispatch(state.AddEntry{Entry: entry}); err != nil {
		t.Fatal(err)
	}
	src.Store.Close()

	dst, _ := setupTestInitDB(t, "dest.json")
	if err := (&InitCmd{Source: srcPath}).Run(dst); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}
	if _, ok := dst.State().Journal.Find("copied"); !ok {
		t.Error("init --source did not copy the journal")
	}
}

func TestInitCmd_ForceSameSource(t *testing.T) {
	ctx, path := setupTestInitDB(t, "test.db")
	if err := (&InitCmd{Force: true, Source: path}).Run(ctx); err == nil {
		t.Error("init --force with itself as source should fail")
	}
}
