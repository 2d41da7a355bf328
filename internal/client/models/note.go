// Package models defines the note collection types shared by the local store,
// the file cache and the sync engine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Reserved folder ids. Both are created on first load and cannot be deleted.
const (
	DeletedFolderID   = "deleted"
	ProtectedFolderID = "protected"
)

// TrashRetention is how long a soft-deleted note is kept locally before the
// load-time sweep removes it for good.
const TrashRetention = 7 * 24 * time.Hour

// Now returns the current UTC time truncated to millisecond precision, the
// resolution used for conflict comparison.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Note is the unit of reconciliation. UpdatedAt is the sole conflict key:
// the side with the strictly greater UpdatedAt wins in full for that id.
type Note struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Content   []ContentBlock `json:"content"`
	Tags      []string       `json:"tags,omitempty"`
	Folder    string         `json:"folder,omitempty"`
	IsPinned  bool           `json:"isPinned,omitempty"`
	IsDeleted bool           `json:"isDeleted,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// NewNote builds a note with a fresh id and both timestamps set to now.
func NewNote(title string, content []ContentBlock) Note {
	now := Now()
	return Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of the note.
func (n Note) Clone() Note {
	out := n
	out.Content = make([]ContentBlock, len(n.Content))
	for i, b := range n.Content {
		out.Content[i] = b.Clone()
	}
	if n.Tags != nil {
		out.Tags = make([]string, len(n.Tags))
		copy(out.Tags, n.Tags)
	}
	return out
}

// Attachments returns the indexes of the note's attachment blocks.
func (n Note) Attachments() []int {
	var idx []int
	for i, b := range n.Content {
		if b.IsAttachment() {
			idx = append(idx, i)
		}
	}
	return idx
}

// Expired reports whether a soft-deleted note has outlived the local trash
// retention at the given instant.
func (n Note) Expired(at time.Time) bool {
	return n.IsDeleted && at.Sub(n.UpdatedAt) > TrashRetention
}

// NotePatch is a partial update merged into an existing note. Nil fields are
// left untouched; Content, Tags replace wholesale when non-nil.
type NotePatch struct {
	Title     *string
	Content   []ContentBlock
	Tags      []string
	Folder    *string
	IsPinned  *bool
	IsDeleted *bool
}

// Apply merges the patch into n.
func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = p.Content
	}
	if p.Tags != nil {
		n.Tags = p.Tags
	}
	if p.Folder != nil {
		n.Folder = *p.Folder
	}
	if p.IsPinned != nil {
		n.IsPinned = *p.IsPinned
	}
	if p.IsDeleted != nil {
		n.IsDeleted = *p.IsDeleted
	}
}

// Folder groups notes. Membership lives on the note (Note.Folder).
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultFolders returns the reserved folders seeded on first load.
func DefaultFolders() []Folder {
	return []Folder{
		{ID: DeletedFolderID, Name: "Trash"},
		{ID: ProtectedFolderID, Name: "Protected"},
	}
}

// Document is the single locally persisted unit: the whole note collection
// plus folder and tag lists.
type Document struct {
	Notes   []Note   `json:"notes"`
	Folders []Folder `json:"folders"`
	Tags    []string `json:"tags,omitempty"`
}

// Owner is the authenticated identity every remote path is namespaced by.
type Owner struct {
	ID    string
	Email string
}
