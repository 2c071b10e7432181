package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/tLat87/SportJournal/internal/cli"
	"github.com/tLat87/SportJournal/internal/constants"
	"github.com/tLat87/SportJournal/internal/keyring"
	"github.com/tLat87/SportJournal/internal/notifier"
	"github.com/tLat87/SportJournal/internal/state"
	"github.com/tLat87/SportJournal/internal/storage"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsStore checks are skipped when the store cannot be reached.
	needsStore bool
	// warnOnly failures do not fail the run.
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsStore: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsStore: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Snapshot decodes", needsStore: true, run: checkSnapshotDecodes},
	{name: "Entry ids unique", needsStore: true, run: checkEntryIDs},
	{name: "Unread counter", needsStore: true, run: checkUnreadCounter},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "OS keyring", warnOnly: true, run: checkKeyring},
	{name: "Tray app", warnOnly: true, run: checkTray},
}

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed)
	skipColor = color.New(color.FgHiBlack)
)

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := true
	if err := checkDBReachable(ctx); err != nil {
		failColor.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
		storeReachable = false
	} else {
		okColor.Printf("✓ Store reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsStore && !storeReachable {
			skipColor.Printf("⊘ %s: SKIPPED (store not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			okColor.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			warnColor.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			failColor.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func schemaVersions(ctx *cli.Context) (current, latest int, ok bool, err error) {
	sqliteStore, isSQLite := ctx.Store.(*storage.SQLiteStore)
	if !isSQLite {
		return 0, 0, false, nil
	}
	if current, err = sqliteStore.SchemaVersion(); err != nil {
		return 0, 0, false, fmt.Errorf("failed to get current schema version: %w", err)
	}
	if latest, err = sqliteStore.LatestSchemaVersion(); err != nil {
		return 0, 0, false, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, true, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, ok, err := schemaVersions(ctx)
	if err != nil || !ok {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, ok, err := schemaVersions(ctx)
	if err != nil || !ok {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'sportjournal migrate')", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'sportjournal backup create'")
	}
	return nil
}

func checkSnapshotDecodes(ctx *cli.Context) error {
	snap, err := ctx.Store.LoadSnapshot()
	if err != nil {
		return err
	}
	_, err = state.Restore(state.Initial(time.Now()), snap)
	return err
}

// checkEntryIDs reads the raw journal slice, since hydration already drops
// duplicates and would hide them.
func checkEntryIDs(ctx *cli.Context) error {
	var journal state.JournalState
	found, err := rawSlice(ctx, constants.KeyJournal, &journal)
	if err != nil || !found {
		return err
	}

	seen := make(map[string]bool, len(journal.Entries))
	for _, e := range journal.Entries {
		if seen[e.ID] {
			return fmt.Errorf("duplicate entry ID found: %s", e.ID)
		}
		seen[e.ID] = true
	}
	return nil
}

func checkUnreadCounter(ctx *cli.Context) error {
	var notifications state.NotificationsState
	found, err := rawSlice(ctx, constants.KeyNotifications, &notifications)
	if err != nil || !found {
		return err
	}

	unread := 0
	for _, n := range notifications.Notifications {
		if !n.IsRead {
			unread++
		}
	}
	if unread != notifications.UnreadCount {
		return fmt.Errorf("stored unread count %d does not match %d unread notifications", notifications.UnreadCount, unread)
	}
	return nil
}

func rawSlice(ctx *cli.Context, key string, v any) (bool, error) {
	snap, err := ctx.Store.LoadSnapshot()
	if err != nil {
		return false, err
	}
	raw, ok := snap[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.Default().Available() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkTray(ctx *cli.Context) error {
	running, err := notifier.TrayStatus()
	if err != nil {
		return err
	}
	if !running {
		return errors.New("tray app is not running; notifications stay in the journal only")
	}
	return nil
}
