package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/tLat87/SportJournal/internal/cli"
	"github.com/tLat87/SportJournal/internal/cli/achievements"
	"github.com/tLat87/SportJournal/internal/cli/backups"
	"github.com/tLat87/SportJournal/internal/cli/entries"
	"github.com/tLat87/SportJournal/internal/cli/goals"
	"github.com/tLat87/SportJournal/internal/cli/notifications"
	"github.com/tLat87/SportJournal/internal/cli/reports"
	"github.com/tLat87/SportJournal/internal/cli/social"
	"github.com/tLat87/SportJournal/internal/cli/system"
	"github.com/tLat87/SportJournal/internal/config"
	"github.com/tLat87/SportJournal/internal/constants"
	apperrors "github.com/tLat87/SportJournal/internal/errors"
	"github.com/tLat87/SportJournal/internal/keyring"
	"github.com/tLat87/SportJournal/internal/logger"
	"github.com/tLat87/SportJournal/internal/metrics"
	"github.com/tLat87/SportJournal/internal/notifier"
	"github.com/tLat87/SportJournal/internal/state"
	"github.com/tLat87/SportJournal/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Store   string `help:"Store path (.db or .json), PostgreSQL connection string, or 'keyring'. PostgreSQL passwords must NOT be embedded here; use SPORTJOURNAL_DB_CONNECTION, .pgpass or the OS keyring." type:"string"`
	Config  string `help:"Config file path." type:"path" default:"${config_path}"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize sportjournal storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Entry        entries.EntryCmd              `cmd:"" help:"Manage journal entries."`
	Goal         goals.GoalCmd                 `cmd:"" help:"Manage goals."`
	Achievement  achievements.AchievementCmd   `cmd:"" help:"Show and update achievements."`
	Notification notifications.NotificationCmd `cmd:"" help:"Manage notifications."`
	Friend       social.FriendCmd              `cmd:"" help:"Manage friends."`
	Challenge    social.ChallengeCmd           `cmd:"" help:"Manage challenges."`
	Stats        reports.StatsCmd              `cmd:"" help:"Show journal statistics."`
	Export       reports.ExportCmd             `cmd:"" help:"Export the journal as Markdown or HTML."`
	Onboarding   system.OnboardingCmd          `cmd:"" help:"Show or change onboarding state."`
	Keyring      system.KeyringCmd             `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Backup       struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage journal backups."`
}

// commands that must work without a loaded journal
var noLoad = map[string]bool{
	"init":    true,
	"keyring": true,
	"doctor":  true,
	"migrate": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Local-first fitness journal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug || cfg.Logging.Debug, ConfigDir: cfg.Dir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	defer logger.Close()

	target, err := cfg.ResolveTarget(CLI.Store, keyring.Default())
	if err != nil {
		apperrors.Fatal(err)
	}
	logger.Debug("Resolved store", "source", target.Source)

	store, err := storage.Open(target.Value)
	if err != nil {
		apperrors.Fatal(err)
	}

	recorder := metrics.New()
	container := state.New(
		state.WithPersister(store),
		state.WithRecorder(recorder),
	)

	appCtx := &cli.Context{
		Store:     store,
		Container: container,
		Config:    cfg,
		Recorder:  recorder,
	}
	if cfg.Notifier.Enabled {
		appCtx.Notifier = notifier.New()
	}

	if !noLoad[topLevel(ctx)] {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		if err := container.Hydrate(store); err != nil {
			apperrors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	apperrors.Fatal(err)
}

// topLevel returns the first command word, so "keyring set" matches "keyring".
func topLevel(ctx *kong.Context) string {
	for _, p := range ctx.Path {
		if p.Command != nil {
			return p.Command.Name
		}
	}
	return ""
}
