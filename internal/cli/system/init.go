package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tLat87/SportJournal/internal/cli"
	"github.com/tLat87/SportJournal/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing journal before initialization."`
	Source string `help:"Store path or connection string to copy the journal from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.removeExisting(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized sportjournal storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying journal from: %s\n", c.Source)
		if err := c.copyFrom(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	// hydrate from whatever the store now holds and write it back, so a fresh
	// store starts with the seeded goals, achievements and friends
	if err := ctx.Container.Hydrate(ctx.Store); err != nil {
		return err
	}
	return ctx.Container.Flush()
}

func (c *InitCmd) removeExisting(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*storage.PostgresStore); ok {
		return fmt.Errorf("--force is not supported for PostgreSQL; drop the tables manually")
	}

	path := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == path {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing store: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing store: %w", err)
		}
		fmt.Printf("Deleted existing journal at: %s\n", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing store: %w", err)
	}
	return nil
}

// copyFrom moves every persisted slice from source into the current store.
func (c *InitCmd) copyFrom(ctx *cli.Context, source string) error {
	if storage.IsPostgres(source) {
		if _, err := storage.ValidateConnString(source); err != nil {
			return fmt.Errorf("invalid source: %w", err)
		}
	}
	src, err := storage.Open(source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source store: %w", err)
	}
	defer src.Close()

	snap, err := src.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("failed to read source journal: %w", err)
	}
	if err := ctx.Store.SaveSnapshot(snap); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	fmt.Printf("  Copied %d slices\n", len(snap))
	return nil
}
