package cli

import (
	"context"
	"fmt"

	"github.com/ametova/finkeeper/internal/models"
)

// ListNotes prints every note with its timestamps.
func (a *App) ListNotes(ctx context.Context) error {
	items := a.notes.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No notes yet")
		return nil
	}

	for _, n := range items {
		fmt.Fprintf(a.out, "%s  %s (updated %s)\n%s\n\n",
			n.ID, n.Title, n.UpdatedAt.Format("2006-01-02 15:04"), n.Content)
	}
	return nil
}

// AddNote interactively creates a note with a multiline body.
func (a *App) AddNote(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}

	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}

	_, err = a.notes.Add(ctx, models.Note{Title: title, Content: content})
	return err
}

// EditNote replaces the body of an existing note.
func (a *App) EditNote(ctx context.Context, id string) error {
	content, err := GetMultiline(a.reader, "New content", a.out)
	if err != nil {
		return err
	}
	return a.notes.Update(ctx, id, models.NotePatch{Content: &content})
}

// DeleteNote removes a note by id.
func (a *App) DeleteNote(ctx context.Context, id string) error {
	return a.notes.Delete(ctx, id)
}
