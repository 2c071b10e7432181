package entries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/tLat87/SportJournal/internal/cli"
	"github.com/tLat87/SportJournal/internal/constants"
	"github.com/tLat87/SportJournal/internal/media"
	"github.com/tLat87/SportJournal/internal/models"
	"github.com/tLat87/SportJournal/internal/state"
)

type EntryCmd struct {
	Add    EntryAddCmd    `cmd:"" help:"Log a workout."`
	List   EntryListCmd   `cmd:"" help:"List journal entries." default:"1"`
	Show   EntryShowCmd   `cmd:"" help:"Show one entry."`
	Edit   EntryEditCmd   `cmd:"" help:"Edit an entry."`
	Delete EntryDeleteCmd `cmd:"" help:"Delete an entry."`
	Search EntrySearchCmd `cmd:"" help:"Search entries by name or description."`
	Share  EntryShareCmd  `cmd:"" help:"Print the share text for an entry."`
}

type EntryAddCmd struct {
	Name        string   `arg:"" help:"Activity name."`
	Description string   `short:"d" help:"What you did."`
	Date        string   `help:"Date (YYYY-MM-DD), defaults to today."`
	Time        string   `short:"t" help:"Time (HH:MM), defaults to now."`
	Duration    int      `help:"Duration in minutes."`
	Calories    int      `help:"Calories burned."`
	Intensity   string   `help:"Intensity (low|medium|high)."`
	Mood        string   `help:"Mood (excited|happy|neutral|tired|exhausted)."`
	Category    string   `help:"Free-form category."`
	Tags        []string `help:"Comma-separated tags."`
	Location    string   `help:"Where it happened."`
	Weather     string   `help:"Weather conditions."`
	Photo       string   `help:"Path to a photo to attach."`
	PickPhoto   bool     `help:"Choose a photo interactively." name:"pick-photo"`
}

func (c *EntryAddCmd) Run(ctx *cli.Context) error {
	now := ctx.Now()
	date, err := cli.ParseDate(c.Date, now)
	if err != nil {
		return err
	}

	entry := models.JournalEntry{
		ID:                  uuid.NewString(),
		ActivityName:        strings.TrimSpace(c.Name),
		ActivityDescription: strings.TrimSpace(c.Description),
		Time:                c.Time,
		Date:                date,
		CreatedAt:           now.UnixMilli(),
		Tags:                c.Tags,
		Category:            c.Category,
		Duration:            c.Duration,
		Intensity:           models.Intensity(strings.ToLower(c.Intensity)),
		Calories:            c.Calories,
		Mood:                models.Mood(strings.ToLower(c.Mood)),
		Weather:             c.Weather,
		Location:            c.Location,
	}
	if entry.Time == "" {
		entry.Time = now.Format(constants.TimeFormat)
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	uri, err := c.pickPhoto(ctx)
	if err != nil {
		return err
	}
	entry.PhotoURI = uri

	if err := ctx.Dispatch(state.AddEntry{Entry: entry}); err != nil {
		return err
	}

	fmt.Printf("Logged %s (ID: %s)\n", entry.ActivityName, cli.ShortID(entry.ID))
	if entry.HasPhoto() {
		fmt.Printf("  Photo: %s\n", entry.PhotoURI)
	}
	return nil
}

// pickPhoto returns "" when no photo was asked for or the picker was cancelled.
func (c *EntryAddCmd) pickPhoto(ctx *cli.Context) (string, error) {
	var picker media.Picker
	switch {
	case c.Photo != "":
		picker = media.PathPicker{Path: c.Photo, Library: ctx.MediaLibrary()}
	case c.PickPhoto:
		picker = media.FormPicker{Library: ctx.MediaLibrary()}
	default:
		return "", nil
	}

	uri, err := picker.Pick(context.Background())
	if errors.Is(err, media.ErrCancelled) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to attach photo: %w", err)
	}
	return uri, nil
}

type EntryListCmd struct {
	Limit   int  `short:"n" help:"Show at most this many entries (0 for all)." default:"20"`
	Today   bool `help:"Only entries logged today."`
	ShowIDs bool `help:"Show full entry IDs." name:"show-ids"`
}

func (c *EntryListCmd) Run(ctx *cli.Context) error {
	journal := ctx.State().Journal
	now := ctx.Now()

	entries := journal.Entries
	if c.Today {
		entries = journal.Today(now)
	} else if c.Limit > 0 {
		entries = journal.Recent(c.Limit)
	}

	if len(entries) == 0 {
		fmt.Println("No entries yet. Log one with 'sportjournal entry add'.")
		return nil
	}

	fmt.Printf("Journal (%d of %d):\n", len(entries), len(journal.Entries))
	for _, e := range entries {
		printLine(e, now, c.ShowIDs)
	}
	return nil
}

type EntryShowCmd struct {
	ID string `arg:"" help:"Entry ID or unique prefix."`
}

func (c *EntryShowCmd) Run(ctx *cli.Context) error {
	entry, err := find(ctx, c.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", entry.ActivityName)
	fmt.Printf("  ID:       %s\n", entry.ID)
	fmt.Printf("  When:     %s %s (%s)\n", entry.Date.Format(constants.DateFormat), entry.Time, humanize.RelTime(entry.Date, ctx.Now(), "ago", "from now"))
	if entry.ActivityDescription != "" {
		fmt.Printf("  Notes:    %s\n", entry.ActivityDescription)
	}
	if entry.Duration > 0 {
		fmt.Printf("  Duration: %d min\n", entry.Duration)
	}
	if entry.Calories > 0 {
		fmt.Printf("  Calories: %s\n", humanize.Comma(int64(entry.Calories)))
	}
	if entry.Intensity != "" {
		fmt.Printf("  Intensity: %s\n", entry.Intensity)
	}
	if entry.Mood != "" {
		fmt.Printf("  Mood:     %s\n", entry.Mood)
	}
	if entry.Category != "" {
		fmt.Printf("  Category: %s\n", entry.Category)
	}
	if len(entry.Tags) > 0 {
		fmt.Printf("  Tags:     %s\n", strings.Join(entry.Tags, ", "))
	}
	if entry.Location != "" {
		fmt.Printf("  Location: %s\n", entry.Location)
	}
	if entry.Weather != "" {
		fmt.Printf("  Weather:  %s\n", entry.Weather)
	}
	if entry.HasPhoto() {
		fmt.Printf("  Photo:    %s\n", entry.PhotoURI)
	}
	return nil
}

type EntryEditCmd struct {
	ID          string  `arg:"" help:"Entry ID or unique prefix."`
	Name        *string `help:"New activity name."`
	Description *string `short:"d" help:"New description."`
	Date        *string `help:"New date (YYYY-MM-DD)."`
	Time        *string `short:"t" help:"New time (HH:MM)."`
	Duration    *int    `help:"New duration in minutes."`
	Calories    *int    `help:"New calories burned."`
	Intensity   *string `help:"New intensity (low|medium|high)."`
	Mood        *string `help:"New mood."`
	Tags        *string `help:"Replace tags (comma-separated)."`
	Location    *string `help:"New location."`
	Weather     *string `help:"New weather."`
	Photo       *string `help:"Attach a new photo, or \"\" to remove it."`
}

func (c *EntryEditCmd) Run(ctx *cli.Context) error {
	entry, err := find(ctx, c.ID)
	if err != nil {
		return err
	}

	if c.Name != nil {
		entry.ActivityName = strings.TrimSpace(*c.Name)
	}
	if c.Description != nil {
		entry.ActivityDescription = strings.TrimSpace(*c.Description)
	}
	if c.Date != nil {
		date, err := cli.ParseDate(*c.Date, entry.Date)
		if err != nil {
			return err
		}
		entry.Date = date
	}
	if c.Time != nil {
		entry.Time = *c.Time
	}
	if c.Duration != nil {
		entry.Duration = *c.Duration
	}
	if c.Calories != nil {
		entry.Calories = *c.Calories
	}
	if c.Intensity != nil {
		entry.Intensity = models.Intensity(strings.ToLower(*c.Intensity))
	}
	if c.Mood != nil {
		entry.Mood = models.Mood(strings.ToLower(*c.Mood))
	}
	if c.Tags != nil {
		entry.Tags = splitTags(*c.Tags)
	}
	if c.Location != nil {
		entry.Location = *c.Location
	}
	if c.Weather != nil {
		entry.Weather = *c.Weather
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	if c.Photo != nil {
		entry.PhotoURI = ""
		if *c.Photo != "" {
			uri, err := media.PathPicker{Path: *c.Photo, Library: ctx.MediaLibrary()}.Pick(context.Background())
			if err != nil {
				return fmt.Errorf("failed to attach photo: %w", err)
			}
			entry.PhotoURI = uri
		}
	}

	if err := ctx.Dispatch(state.UpdateEntry{Entry: entry}); err != nil {
		return err
	}
	fmt.Printf("Updated %s (ID: %s)\n", entry.ActivityName, cli.ShortID(entry.ID))
	return nil
}

type EntryDeleteCmd struct {
	ID string `arg:"" help:"Entry ID or unique prefix."`
}

func (c *EntryDeleteCmd) Run(ctx *cli.Context) error {
	entry, err := find(ctx, c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Dispatch(state.DeleteEntry{ID: entry.ID}); err != nil {
		return err
	}
	fmt.Printf("Deleted entry: %s (ID: %s)\n", entry.ActivityName, cli.ShortID(entry.ID))
	return nil
}

type EntrySearchCmd struct {
	Query string `arg:"" help:"Text to look for."`
}

func (c *EntrySearchCmd) Run(ctx *cli.Context) error {
	matches := ctx.State().Journal.Search(c.Query)
	if len(matches) == 0 {
		fmt.Printf("No entries match %q\n", c.Query)
		return nil
	}

	now := ctx.Now()
	fmt.Printf("%d %s match %q:\n", len(matches), plural(len(matches), "entry", "entries"), c.Query)
	for _, e := range matches {
		printLine(e, now, false)
	}
	return nil
}

type EntryShareCmd struct {
	ID string `arg:"" help:"Entry ID or unique prefix."`
}

func (c *EntryShareCmd) Run(ctx *cli.Context) error {
	entry, err := find(ctx, c.ID)
	if err != nil {
		return err
	}
	fmt.Println(entry.ShareText())
	return nil
}

func find(ctx *cli.Context, query string) (models.JournalEntry, error) {
	journal := ctx.State().Journal
	ids := make([]string, len(journal.Entries))
	for i, e := range journal.Entries {
		ids[i] = e.ID
	}

	id, err := cli.ResolveID("entry", ids, query)
	if err != nil {
		return models.JournalEntry{}, err
	}
	entry, _ := journal.Find(id)
	return entry, nil
}

func printLine(e models.JournalEntry, now time.Time, fullID bool) {
	id := cli.ShortID(e.ID)
	if fullID {
		id = e.ID
	}

	var extras []string
	if e.Duration > 0 {
		extras = append(extras, fmt.Sprintf("%dm", e.Duration))
	}
	if e.Calories > 0 {
		extras = append(extras, humanize.Comma(int64(e.Calories))+" kcal")
	}
	if e.HasPhoto() {
		extras = append(extras, "photo")
	}
	suffix := ""
	if len(extras) > 0 {
		suffix = " [" + strings.Join(extras, ", ") + "]"
	}

	fmt.Printf("  %s  %-10s %s%s\n", id, humanize.RelTime(e.Date, now, "ago", "from now"), e.ActivityName, suffix)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
