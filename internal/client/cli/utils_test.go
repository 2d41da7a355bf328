package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/raidellg/blocnotes/internal/client/models"
)

func TestNoteSummary(t *testing.T) {
	n := models.Note{ID: "0123456789abcdef", Title: "groceries", Tags: []string{"home"}}
	got := noteSummary(n)
	assert.Contains(t, got, "01234567")
	assert.Contains(t, got, "groceries")
	assert.Contains(t, got, "[home]")

	n.IsPinned = true
	assert.Contains(t, noteSummary(n), "*")

	n.Title = ""
	assert.Contains(t, noteSummary(n), "(untitled)")
}

func TestBlockSummary(t *testing.T) {
	text := models.ContentBlock{ID: "b1", Type: models.ContentTypeText, Props: models.TextProps{Text: "hi"}}
	assert.Equal(t, "hi", blockSummary(text))

	check := models.ContentBlock{ID: "b2", Type: models.ContentTypeChecklist, Props: models.ChecklistProps{
		Items: []models.ChecklistItem{{Text: "milk", Checked: true}, {Text: "eggs"}},
	}}
	assert.Equal(t, "[x] milk\n[ ] eggs", blockSummary(check))

	uploaded := time.Now()
	img := models.ContentBlock{ID: "b3", Type: models.ContentTypeImage, Props: models.FileProps{
		URI: "/cache/b3+a.png", Filename: "b3+a.png", UploadedAt: &uploaded,
	}}
	assert.Contains(t, blockSummary(img), "uploaded")

	pending := models.ContentBlock{ID: "b4", Type: models.ContentTypeAudio, Props: models.FileProps{
		URI: "/cache/b4+r.m4a", Filename: "b4+r.m4a",
	}}
	assert.Contains(t, blockSummary(pending), "pending upload")

	unstaged := models.ContentBlock{ID: "b5", Type: models.ContentTypeImage, Props: models.FileProps{
		URI: "/device/pic.jpg",
	}}
	assert.Contains(t, blockSummary(unstaged), "not staged")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "01234567", shortID("0123456789"))
	assert.Equal(t, "abc", shortID("abc"))
}
