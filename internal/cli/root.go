package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/tLat87/SportJournal/internal/backup"
	"github.com/tLat87/SportJournal/internal/config"
	"github.com/tLat87/SportJournal/internal/constants"
	apperrors "github.com/tLat87/SportJournal/internal/errors"
	"github.com/tLat87/SportJournal/internal/logger"
	"github.com/tLat87/SportJournal/internal/media"
	"github.com/tLat87/SportJournal/internal/metrics"
	"github.com/tLat87/SportJournal/internal/models"
	"github.com/tLat87/SportJournal/internal/notifier"
	"github.com/tLat87/SportJournal/internal/state"
	"github.com/tLat87/SportJournal/internal/storage"
)

type Context struct {
	Store     storage.Provider
	Container *state.Container
	Config    *config.Config
	Recorder  *metrics.Recorder
	// Notifier is nil when tray notifications are disabled.
	Notifier *notifier.Notifier
}

// Now is the container clock, so tests can pin it.
func (c *Context) Now() time.Time {
	if c.Container != nil {
		return c.Container.Now()
	}
	return time.Now()
}

func (c *Context) State() state.State {
	return c.Container.State()
}

// Dispatch runs each action through the container, then takes the automatic
// backup and refreshes the metrics textfile. It stops at the first failed save.
func (c *Context) Dispatch(actions ...state.Action) error {
	for _, a := range actions {
		if err := c.Container.Dispatch(a); err != nil {
			return err
		}
	}
	c.PerformAutomaticBackup()
	c.WriteMetrics()
	return nil
}

func (c *Context) backupManager() *backup.Manager {
	maxBackups := constants.MaxBackups
	if c.Config != nil {
		maxBackups = c.Config.Backup.MaxBackups
	}
	return backup.NewManager(c.Store.GetConfigPath(), maxBackups)
}

// BackupManager returns the manager for the current store, or an error for
// stores that are not a local file.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*storage.PostgresStore); ok {
		return nil, errors.New("backups are only supported for SQLite and JSON stores; use pg_dump for PostgreSQL")
	}
	return c.backupManager(), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if c.Config == nil || !c.Config.Backup.Automatic {
		return
	}
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// WriteMetrics writes the node-exporter textfile when one is configured.
func (c *Context) WriteMetrics() {
	if c.Config == nil || c.Config.Metrics.Textfile == "" {
		return
	}
	if err := c.Recorder.WriteTextfile(config.ExpandPath(c.Config.Metrics.Textfile)); err != nil {
		logger.Warn("Failed to write metrics textfile", "error", err)
	}
}

// Notify forwards n to the desktop tray app. A tray that is not running is not
// an error.
func (c *Context) Notify(n models.Notification) {
	if c.Notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := c.Notifier.NotifyNotification(ctx, n)
	switch {
	case err == nil:
	case errors.Is(err, notifier.ErrTrayNotRunning):
		logger.Debug("Tray app not running, notification not pushed")
	default:
		logger.Warn("Failed to push notification to tray", "error", err)
	}
}

// MediaLibrary is where attached photos are copied.
func (c *Context) MediaLibrary() media.Library {
	if c.Config == nil {
		return media.Library{Dir: filepath.Join(config.ExpandPath(constants.DefaultConfigDir), constants.MediaDirName)}
	}
	return media.Library{Dir: c.Config.MediaDir()}
}

// ResolveID matches query against ids, exactly or as a unique prefix.
func ResolveID(kind string, ids []string, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("%w: %s id cannot be empty", models.ErrValidation, kind)
	}

	var matches []string
	for _, id := range ids {
		if id == query {
			return id, nil
		}
		if strings.HasPrefix(id, query) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", apperrors.NotFound(kind, query)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s id %q is ambiguous (%d matches)", kind, query, len(matches))
	}
}

// ParseDate parses a YYYY-MM-DD date in the local zone, keeping the clock
// time of now so entries added for another day still sort sensibly.
func ParseDate(s string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return now, nil
	}
	d, err := time.ParseInLocation(constants.DateFormat, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q (use YYYY-MM-DD)", models.ErrValidation, s)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), now.Hour(), now.Minute(), now.Second(), 0, now.Location()), nil
}

// ShortID trims an id for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Bar draws a fixed-width text progress bar for percent, capped at 100.
func Bar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// Confirm asks a yes/no question with a huh form. assumeYes skips the prompt.
func Confirm(title string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}
