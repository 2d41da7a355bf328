package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/raidellg/blocnotes/internal/client/models"
)

func (a *App) list(args []string) {
	folder := ""
	if len(args) > 0 {
		folder = args[0]
	}

	notes := a.store.NotesByFolder(folder)
	if len(notes) == 0 {
		fmt.Println("No notes")
		return
	}
	for _, n := range notes {
		fmt.Println(noteSummary(n))
	}
}

func (a *App) show(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: show <id>")
		return
	}
	id, ok := a.resolveNoteID(args[0])
	if !ok {
		fmt.Println("Note not found:", args[0])
		return
	}
	n, _ := a.store.Get(id)

	fmt.Println("Id:     ", n.ID)
	fmt.Println("Title:  ", n.Title)
	if n.Folder != "" {
		fmt.Println("Folder: ", n.Folder)
	}
	if len(n.Tags) > 0 {
		fmt.Println("Tags:   ", strings.Join(n.Tags, ", "))
	}
	fmt.Println("Updated:", n.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Println()
	for _, b := range n.Content {
		fmt.Println(blockSummary(b))
	}
}

func (a *App) addNote(ctx context.Context) {
	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	body, err := GetMultiline(a.reader, "Text", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	var content []models.ContentBlock
	if body != "" {
		content = append(content, models.NewTextBlock(body, ""))
	}

	n, err := a.store.Add(ctx, models.NewNote(title, content))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Added note", shortID(n.ID))
}

func (a *App) attach(ctx context.Context, args []string) {
	if len(args) < 3 {
		fmt.Println("Usage: attach <id> <image|audio> <path>")
		return
	}
	id, ok := a.resolveNoteID(args[0])
	if !ok {
		fmt.Println("Note not found:", args[0])
		return
	}

	var block models.ContentBlock
	switch args[1] {
	case "image":
		block = models.NewImageBlock(args[2])
	case "audio":
		block = models.NewAudioBlock(args[2], "", 0)
	default:
		fmt.Println("Unknown attachment kind:", args[1])
		return
	}

	n, _ := a.store.Get(id)
	content := append(n.Content, block)
	if _, err := a.store.Touch(ctx, id, models.NotePatch{Content: content}); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Attached", args[1], "to", shortID(id))
}

func (a *App) tag(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: tag <id> <tags...>")
		return
	}
	id, ok := a.resolveNoteID(args[0])
	if !ok {
		fmt.Println("Note not found:", args[0])
		return
	}

	if _, err := a.store.Touch(ctx, id, models.NotePatch{Tags: args[1:]}); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Tagged", shortID(id))
}

func (a *App) tags() {
	tags := a.store.AllTags()
	if len(tags) == 0 {
		fmt.Println("No tags")
		return
	}
	fmt.Println(strings.Join(tags, ", "))
}

func (a *App) move(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: move <id> <folder>")
		return
	}
	id, ok := a.resolveNoteID(args[0])
	if !ok {
		fmt.Println("Note not found:", args[0])
		return
	}

	folder := args[1]
	if _, err := a.store.Touch(ctx, id, models.NotePatch{Folder: &folder}); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Moved", shortID(id), "to", folder)
}

func (a *App) trash(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: trash <id>")
		return
	}
	id, ok := a.resolveNoteID(args[0])
	if !ok {
		fmt.Println("Note not found:", args[0])
		return
	}

	if err := a.store.MoveToTrash(ctx, id); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Moved", shortID(id), "to trash")
}

func (a *App) restore(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: restore <id>")
		return
	}
	id, ok := a.resolveNoteID(args[0])
	if !ok {
		fmt.Println("Note not found:", args[0])
		return
	}

	if err := a.store.Restore(ctx, id); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Restored", shortID(id))
}
