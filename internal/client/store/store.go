// Package store owns the in-memory note collection and its persistence into
// the local state repository. All mutations go through the NoteStore so the
// document on disk never diverges from what callers observe.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/raidellg/blocnotes/internal/client/filecache"
	"github.com/raidellg/blocnotes/internal/client/models"
	"github.com/raidellg/blocnotes/internal/client/repositories/state"
	"github.com/raidellg/blocnotes/internal/common"
	"github.com/raidellg/blocnotes/internal/logging"
)

type NoteStore struct {
	mu    sync.RWMutex
	repo  state.Repository
	cache *filecache.Cache
	log   logging.Logger
	doc   models.Document
}

func New(repo state.Repository, cache *filecache.Cache, log logging.Logger) *NoteStore {
	return &NoteStore{repo: repo, cache: cache, log: log}
}

// Load reads the persisted document, seeds the reserved folders and sweeps
// soft-deleted notes that outlived the trash retention.
func (s *NoteStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.repo.Get(ctx, state.NotesKey)
	if err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}

	var doc models.Document
	if data != nil {
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to decode notes: %w", err)
		}
	}

	changed := s.seedFolders(&doc)

	now := models.Now()
	kept := doc.Notes[:0]
	for _, n := range doc.Notes {
		if n.Expired(now) {
			s.log.Info(ctx, "sweeping expired note", "id", n.ID)
			changed = true
			continue
		}
		kept = append(kept, n)
	}
	doc.Notes = kept

	s.doc = doc
	if changed {
		return s.persistLocked(ctx)
	}
	return nil
}

func (s *NoteStore) seedFolders(doc *models.Document) bool {
	have := make(map[string]bool, len(doc.Folders))
	for _, f := range doc.Folders {
		have[f.ID] = true
	}
	changed := false
	for _, f := range models.DefaultFolders() {
		if !have[f.ID] {
			doc.Folders = append(doc.Folders, f)
			changed = true
		}
	}
	return changed
}

func (s *NoteStore) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	if err := s.repo.Set(ctx, state.NotesKey, data); err != nil {
		return fmt.Errorf("failed to persist notes: %w", err)
	}
	return nil
}

// stageAttachments copies device-local attachment files into the cache and
// assigns their stable filenames. A staging failure leaves the block as-is
// for a later retry.
func (s *NoteStore) stageAttachments(ctx context.Context, n *models.Note) {
	for _, i := range n.Attachments() {
		fp, _ := n.Content[i].File()
		if fp.Filename != "" || fp.URI == "" {
			continue
		}
		filename := filecache.StagedFilename(n.Content[i].ID, fp.URI)
		path, err := s.cache.StageLocalFile(ctx, fp.URI, filename)
		if err != nil {
			s.log.Warn(ctx, "failed to stage attachment", "note", n.ID, "filename", filename, "error", err)
			continue
		}
		fp.Filename = filename
		fp.URI = path
		n.Content[i].SetFile(fp)
	}
}

// Add stages the note's attachments, appends it and persists.
func (s *NoteStore) Add(ctx context.Context, n models.Note) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stageAttachments(ctx, &n)
	s.doc.Notes = append(s.doc.Notes, n)
	if err := s.persistLocked(ctx); err != nil {
		return models.Note{}, err
	}
	return n.Clone(), nil
}

// Touch applies the patch, bumps UpdatedAt and persists.
func (s *NoteStore) Touch(ctx context.Context, id string, p models.NotePatch) (models.Note, error) {
	return s.patch(ctx, id, p, true)
}

// PatchSilently applies the patch without bumping UpdatedAt. Used for local
// bookkeeping changes that must not win a sync conflict.
func (s *NoteStore) PatchSilently(ctx context.Context, id string, p models.NotePatch) (models.Note, error) {
	return s.patch(ctx, id, p, false)
}

func (s *NoteStore) patch(ctx context.Context, id string, p models.NotePatch, bump bool) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return models.Note{}, fmt.Errorf("%w: note %s", common.ErrorNotFound, id)
	}

	p.Apply(&s.doc.Notes[i])
	s.stageAttachments(ctx, &s.doc.Notes[i])
	if bump {
		s.doc.Notes[i].UpdatedAt = models.Now()
	}
	if err := s.persistLocked(ctx); err != nil {
		return models.Note{}, err
	}
	return s.doc.Notes[i].Clone(), nil
}

func (s *NoteStore) indexLocked(id string) int {
	for i, n := range s.doc.Notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// MoveToTrash soft-deletes the note and files it under the trash folder.
func (s *NoteStore) MoveToTrash(ctx context.Context, id string) error {
	deleted := true
	folder := models.DeletedFolderID
	_, err := s.Touch(ctx, id, models.NotePatch{IsDeleted: &deleted, Folder: &folder})
	return err
}

// Restore brings a trashed note back into the default view.
func (s *NoteStore) Restore(ctx context.Context, id string) error {
	deleted := false
	folder := ""
	_, err := s.Touch(ctx, id, models.NotePatch{IsDeleted: &deleted, Folder: &folder})
	return err
}

// Destroy removes the note from the local document entirely. The remote
// tombstone, if any, is untouched.
func (s *NoteStore) Destroy(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: note %s", common.ErrorNotFound, id)
	}
	s.doc.Notes = append(s.doc.Notes[:i], s.doc.Notes[i+1:]...)
	return s.persistLocked(ctx)
}

// ReplaceAll swaps in a merged note collection and persists it. Folders and
// tags are preserved.
func (s *NoteStore) ReplaceAll(ctx context.Context, notes []models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Notes = make([]models.Note, len(notes))
	for i, n := range notes {
		s.doc.Notes[i] = n.Clone()
	}
	return s.persistLocked(ctx)
}

// Get returns a copy of the note.
func (s *NoteStore) Get(id string) (models.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return models.Note{}, false
	}
	return s.doc.Notes[i].Clone(), true
}

// Notes returns copies of every note, deleted ones included.
func (s *NoteStore) Notes() []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Note, len(s.doc.Notes))
	for i, n := range s.doc.Notes {
		out[i] = n.Clone()
	}
	return out
}

// NotesByFolder filters the collection. An empty folder id means the default
// view: everything not deleted and not in the protected folder. The trash
// folder id lists soft-deleted notes.
func (s *NoteStore) NotesByFolder(folderID string) []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Note
	for _, n := range s.doc.Notes {
		switch folderID {
		case "":
			if !n.IsDeleted && n.Folder != models.ProtectedFolderID {
				out = append(out, n.Clone())
			}
		case models.DeletedFolderID:
			if n.IsDeleted {
				out = append(out, n.Clone())
			}
		default:
			if !n.IsDeleted && n.Folder == folderID {
				out = append(out, n.Clone())
			}
		}
	}
	return out
}

// AllTags returns the distinct tags across non-deleted notes, sorted.
func (s *NoteStore) AllTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	for _, n := range s.doc.Notes {
		if n.IsDeleted {
			continue
		}
		for _, t := range n.Tags {
			seen[t] = true
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Folders returns a copy of the folder list.
func (s *NoteStore) Folders() []models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Folder, len(s.doc.Folders))
	copy(out, s.doc.Folders)
	return out
}

// AddFolder creates a folder with a fresh id.
func (s *NoteStore) AddFolder(ctx context.Context, name string) (models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := models.Folder{ID: uuid.NewString(), Name: name}
	s.doc.Folders = append(s.doc.Folders, f)
	if err := s.persistLocked(ctx); err != nil {
		return models.Folder{}, err
	}
	return f, nil
}

// RenameFolder renames a folder. Reserved folders cannot be renamed.
func (s *NoteStore) RenameFolder(ctx context.Context, id, name string) error {
	if id == models.DeletedFolderID || id == models.ProtectedFolderID {
		return fmt.Errorf("%w: folder %s is reserved", common.ErrorInternal, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.doc.Folders {
		if f.ID == id {
			s.doc.Folders[i].Name = name
			return s.persistLocked(ctx)
		}
	}
	return fmt.Errorf("%w: folder %s", common.ErrorNotFound, id)
}

// DeleteFolder removes a folder; member notes are silently unfiled, their
// UpdatedAt untouched. Reserved folders cannot be deleted.
func (s *NoteStore) DeleteFolder(ctx context.Context, id string) error {
	if id == models.DeletedFolderID || id == models.ProtectedFolderID {
		return fmt.Errorf("%w: folder %s is reserved", common.ErrorInternal, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := -1
	for j, f := range s.doc.Folders {
		if f.ID == id {
			i = j
			break
		}
	}
	if i < 0 {
		return fmt.Errorf("%w: folder %s", common.ErrorNotFound, id)
	}

	s.doc.Folders = append(s.doc.Folders[:i], s.doc.Folders[i+1:]...)
	for j := range s.doc.Notes {
		if s.doc.Notes[j].Folder == id {
			s.doc.Notes[j].Folder = ""
		}
	}
	return s.persistLocked(ctx)
}
