// Package media stores workout photos next to the journal.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/tLat87/SportJournal/internal/logger"
)

// ErrCancelled is returned when the user backs out of picking a photo.
var ErrCancelled = errors.New("photo selection cancelled")

var imageTypes = []string{".jpg", ".jpeg", ".png", ".gif", ".heic", ".webp"}

// Picker produces the URI of a photo to attach to an entry.
type Picker interface {
	Pick(ctx context.Context) (string, error)
}

// IsImage reports whether path has a supported image extension.
func IsImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, t := range imageTypes {
		if ext == t {
			return true
		}
	}
	return false
}

// Library is the directory photos are copied into.
type Library struct {
	Dir string
}

// Import copies src into the library under a fresh name and returns a file:// URI.
func (l Library) Import(src string) (string, error) {
	if !IsImage(src) {
		return "", fmt.Errorf("%s is not a supported image (%s)", filepath.Base(src), strings.Join(imageTypes, ", "))
	}
	info, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", src)
	}

	if err := os.MkdirAll(l.Dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	dst := filepath.Join(l.Dir, uuid.NewString()+strings.ToLower(filepath.Ext(src)))
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("failed to copy photo: %w", err)
	}
	logger.Debug("Photo imported", "src", src, "dst", dst)
	return "file://" + dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

// PathPicker imports a path given up front, e.g. from a --photo flag.
type PathPicker struct {
	Path    string
	Library Library
}

func (p PathPicker) Pick(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(p.Path) == "" {
		return "", ErrCancelled
	}
	return p.Library.Import(p.Path)
}

// FormPicker asks for a photo with a huh file picker rooted at Start.
type FormPicker struct {
	Start   string
	Library Library
}

func (p FormPicker) Pick(ctx context.Context) (string, error) {
	start := p.Start
	if start == "" {
		start, _ = os.UserHomeDir()
	}

	var path string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewFilePicker().
				Title("Attach a photo").
				Description("Esc to skip").
				CurrentDirectory(start).
				AllowedTypes(imageTypes).
				Value(&path),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("photo picker failed: %w", err)
	}
	if path == "" {
		return "", ErrCancelled
	}
	return p.Library.Import(path)
}
