package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNote(t *testing.T) {
	n := NewNote("groceries", []ContentBlock{NewTextBlock("milk", "")})
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "groceries", n.Title)
	assert.False(t, n.CreatedAt.IsZero())
	assert.Equal(t, n.CreatedAt, n.UpdatedAt)
}

func TestNotePatch_Apply(t *testing.T) {
	n := NewNote("old", nil)
	created := n.CreatedAt

	title := "new"
	deleted := true
	p := NotePatch{
		Title:     &title,
		Tags:      []string{"a", "b"},
		IsDeleted: &deleted,
	}
	p.Apply(&n)

	assert.Equal(t, "new", n.Title)
	assert.Equal(t, []string{"a", "b"}, n.Tags)
	assert.True(t, n.IsDeleted)
	assert.Equal(t, created, n.CreatedAt)

	// nil fields leave values untouched
	NotePatch{}.Apply(&n)
	assert.Equal(t, "new", n.Title)
	assert.True(t, n.IsDeleted)
}

func TestNote_Expired(t *testing.T) {
	now := Now()

	n := NewNote("n", nil)
	n.IsDeleted = true
	n.UpdatedAt = now.Add(-TrashRetention - time.Hour)
	assert.True(t, n.Expired(now))

	n.UpdatedAt = now.Add(-time.Hour)
	assert.False(t, n.Expired(now))

	n.IsDeleted = false
	n.UpdatedAt = now.Add(-TrashRetention - time.Hour)
	assert.False(t, n.Expired(now))
}

func TestNote_CloneIsDeep(t *testing.T) {
	n := NewNote("n", []ContentBlock{NewImageBlock("/tmp/a.png")})
	n.Tags = []string{"t1"}

	c := n.Clone()
	fp, _ := c.Content[0].File()
	fp.Filename = "changed"
	c.Content[0].SetFile(fp)
	c.Tags[0] = "t2"

	orig, _ := n.Content[0].File()
	assert.Empty(t, orig.Filename)
	assert.Equal(t, "t1", n.Tags[0])
}

func TestNote_Attachments(t *testing.T) {
	n := NewNote("n", []ContentBlock{
		NewTextBlock("a", ""),
		NewImageBlock("/tmp/a.png"),
		NewAudioBlock("/tmp/b.m4a", "", 1),
	})
	assert.Equal(t, []int{1, 2}, n.Attachments())
}

func TestDocument_JSONRoundTrip(t *testing.T) {
	doc := Document{
		Notes:   []Note{NewNote("n1", []ContentBlock{NewTextBlock("x", "")})},
		Folders: DefaultFolders(),
		Tags:    []string{"work"},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var got Document
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got.Notes, 1)
	assert.Equal(t, doc.Notes[0].ID, got.Notes[0].ID)
	assert.Equal(t, doc.Folders, got.Folders)
}

func TestNow_MillisecondPrecision(t *testing.T) {
	n := Now()
	assert.Zero(t, n.Nanosecond()%int(time.Millisecond))
	assert.Equal(t, time.UTC, n.Location())
}
