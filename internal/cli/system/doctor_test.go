package system

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/tLat87/SportJournal/internal/cli"
	"github.com/tLat87/SportJournal/internal/models"
	"github.com/tLat87/SportJournal/internal/state"
	"github.com/tLat87/SportJournal/internal/storage"
)

func setupTestDoctorDB(t *testing.T) (*cli.Context, *storage.SQLiteStore) {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	container := state.New(state.WithPersister(store))
	if err := container.Flush(); err != nil {
		t.Fatalf("failed to save initial state: %v", err)
	}
	return &cli.Context{Store: store, Container: container}, store
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, _ := setupTestDoctorDB(t)

	// missing backups, keyring and tray are warnings only
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed on healthy database: %v", err)
	}
}

func TestDoctorCmd_WithBackups(t *testing.T) {
	ctx, _ := setupTestDoctorDB(t)
	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	if err := checkBackupsPresent(ctx); err != nil {
		t.Errorf("checkBackupsPresent() error = %v", err)
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	ctx, store := setupTestDoctorDB(t)

	db := store.GetDB()
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to delete schema version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (999)"); err != nil {
		t.Fatalf("failed to insert corrupted schema version: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor command should fail with corrupted schema")
	}
}

func TestDoctorCmd_DuplicateEntries(t *testing.T) {
	ctx, store := setupTestDoctorDB(t)

	entry := models.JournalEntry{ID: "dup", ActivityName: "Run", Date: time.Now()}
	raw, err := json.Marshal(state.JournalState{Entries: []models.JournalEntry{entry, entry}})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveSnapshot(state.Snapshot{"journal": raw}); err != nil {
		t.Fatal(err)
	}

	if err := checkEntryIDs(ctx); err == nil {
		t.Error("checkEntryIDs() expected error for duplicate ids")
	}
	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor command should fail with duplicate entry ids")
	}
}

func TestDoctorCmd_UnreadCounterDrift(t *testing.T) {
	ctx, store := setupTestDoctorDB(t)

	raw, err := json.Marshal(state.NotificationsState{
		Notifications: []models.Notification{{ID: "n1", Title: "Hi"}},
		UnreadCount:   3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveSnapshot(state.Snapshot{"notifications": raw}); err != nil {
		t.Fatal(err)
	}

	if err := checkUnreadCounter(ctx); err == nil {
		t.Error("checkUnreadCounter() expected error for drifted counter")
	}
}

func TestDoctorCmd_UnreachableStore(t *testing.T) {
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	ctx := &cli.Context{Store: store}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor command should fail when the store is missing")
	}
}
