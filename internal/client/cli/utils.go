package cli

import (
	"fmt"
	"strings"

	"github.com/raidellg/blocnotes/internal/client/models"
)

// noteSummary renders one list line: id prefix, pin marker, title, tags.
func noteSummary(n models.Note) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-8s", shortID(n.ID))
	if n.IsPinned {
		b.WriteString("* ")
	} else {
		b.WriteString("  ")
	}
	title := n.Title
	if title == "" {
		title = "(untitled)"
	}
	b.WriteString(title)
	if len(n.Tags) > 0 {
		fmt.Fprintf(&b, "  [%s]", strings.Join(n.Tags, ", "))
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// blockSummary renders one content block for the show command.
func blockSummary(b models.ContentBlock) string {
	switch props := b.Props.(type) {
	case models.TextProps:
		return props.Text
	case models.ChecklistProps:
		var lines []string
		for _, item := range props.Items {
			mark := "[ ]"
			if item.Checked {
				mark = "[x]"
			}
			lines = append(lines, fmt.Sprintf("%s %s", mark, item.Text))
		}
		return strings.Join(lines, "\n")
	case models.FileProps:
		status := "pending upload"
		if props.UploadedAt != nil {
			status = "uploaded"
		}
		if props.Filename == "" {
			status = "not staged"
		}
		label := string(b.Type)
		if props.Title != "" {
			label = label + " " + props.Title
		}
		return fmt.Sprintf("<%s: %s (%s)>", label, props.URI, status)
	default:
		return fmt.Sprintf("<%s>", b.Type)
	}
}

// resolveNoteID expands a (possibly shortened) id to a full note id.
func (a *App) resolveNoteID(prefix string) (string, bool) {
	if _, ok := a.store.Get(prefix); ok {
		return prefix, true
	}
	var match string
	for _, n := range a.store.Notes() {
		if strings.HasPrefix(n.ID, prefix) {
			if match != "" {
				return "", false // ambiguous
			}
			match = n.ID
		}
	}
	return match, match != ""
}
