package reports

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tLat87/SportJournal/internal/cli"
	"github.com/tLat87/SportJournal/internal/export"
	"github.com/tLat87/SportJournal/internal/logger"
)

type ExportCmd struct {
	Format string `short:"f" help:"Output format (md|html)." default:"md"`
	Output string `short:"o" help:"Write to this file instead of stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	doc := export.NewDocument(ctx.State().Journal.Entries, ctx.Now())

	if c.Output == "" {
		return export.Write(os.Stdout, format, doc)
	}
	return writeFile(c.Output, func(w io.Writer) error {
		return export.Write(w, format, doc)
	})
}

func writeFile(path string, render func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	logger.Info("Journal exported", "path", path)
	fmt.Printf("✓ Exported journal to %s\n", path)
	return nil
}
