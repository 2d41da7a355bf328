package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/raidellg/blocnotes/internal/client/filecache"
	"github.com/raidellg/blocnotes/internal/client/gateway"
	"github.com/raidellg/blocnotes/internal/client/models"
	"github.com/raidellg/blocnotes/internal/client/store"
	"github.com/raidellg/blocnotes/internal/logging"
)

// transferWorkers bounds the concurrent attachment transfers per phase.
const transferWorkers = 4

// SyncReport summarizes one reconciliation pass.
type SyncReport struct {
	FetchedNew     int
	FetchedUpdated int
	Upserted       int
	Uploaded       int
	UploadErrors   int
	Downloaded     int
	DownloadErrors int
}

// SyncService reconciles the local note collection with the remote row and
// blob stores. Conflict resolution is last-write-wins at note granularity:
// the side with the strictly greater UpdatedAt wins in full, equal timestamps
// mean no action.
type SyncService struct {
	session gateway.OwnerProvider
	rows    gateway.RowStore
	blobs   gateway.BlobStore
	cache   *filecache.Cache
	store   *store.NoteStore
	log     logging.Logger
}

func NewSyncService(
	session gateway.OwnerProvider,
	rows gateway.RowStore,
	blobs gateway.BlobStore,
	cache *filecache.Cache,
	st *store.NoteStore,
	log logging.Logger,
) *SyncService {
	return &SyncService{
		session: session,
		rows:    rows,
		blobs:   blobs,
		cache:   cache,
		store:   st,
		log:     log,
	}
}

// attachmentJob addresses one attachment block inside the merged collection.
type attachmentJob struct {
	noteIdx  int
	blockIdx int
	bucket   models.Bucket
	filename string
}

// SyncNotes runs one full reconciliation pass. Pass-level failures (auth,
// metadata listing, payload fetch, row upsert, persistence) abort the pass;
// per-attachment transfer failures are isolated and only leave that item
// queued for the next pass.
func (s *SyncService) SyncNotes(ctx context.Context) (*SyncReport, error) {
	owner, err := s.session.CurrentOwner(ctx)
	if err != nil {
		return nil, err
	}

	report := &SyncReport{}

	local := s.store.Notes()
	localIdx := make(map[string]int, len(local))
	for i, n := range local {
		localIdx[n.ID] = i
	}

	meta, err := s.rows.ListMetadata(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote metadata: %w", err)
	}
	remote := make(map[string]models.RowMeta, len(meta))
	for _, m := range meta {
		remote[m.ID] = m
	}

	// Diff. Strict timestamp comparison both ways: a tie moves nothing.
	var fetchIDs []string
	for _, m := range meta {
		i, ok := localIdx[m.ID]
		if !ok {
			// A deleted row with no local copy stays where it is:
			// pulling it would resurrect an already-swept tombstone.
			if m.IsDeleted {
				continue
			}
			fetchIDs = append(fetchIDs, m.ID)
			continue
		}
		if m.UpdatedAt.After(local[i].UpdatedAt) {
			fetchIDs = append(fetchIDs, m.ID)
		}
	}

	var upsertIDs []string
	for _, n := range local {
		m, ok := remote[n.ID]
		if !ok {
			// A local tombstone the remote never saw has nothing to
			// propagate.
			if n.IsDeleted {
				continue
			}
			upsertIDs = append(upsertIDs, n.ID)
			continue
		}
		if n.UpdatedAt.After(m.UpdatedAt) {
			if n.IsDeleted && m.IsDeleted {
				continue
			}
			upsertIDs = append(upsertIDs, n.ID)
		}
	}

	// Fetch full payloads and fold them into the merged collection. A
	// fetched note replaces the local one wholesale.
	merged := local
	mergedIdx := localIdx
	if len(fetchIDs) > 0 {
		fetched, err := s.rows.ListFull(ctx, owner.ID, fetchIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch remote notes: %w", err)
		}
		for _, row := range fetched {
			if i, ok := mergedIdx[row.ID]; ok {
				merged[i] = row.Note
				report.FetchedUpdated++
			} else {
				merged = append(merged, row.Note)
				mergedIdx[row.ID] = len(merged) - 1
				report.FetchedNew++
			}
		}

		// Make the fetched state durable before any remote writes.
		if err := s.store.ReplaceAll(ctx, merged); err != nil {
			return nil, err
		}
	}

	// Stage outgoing attachments that never made it into the cache.
	for _, id := range upsertIDs {
		s.stageNoteAttachments(ctx, &merged[mergedIdx[id]])
	}

	// Upload queue: staged blocks that were never uploaded. Failures are
	// isolated; a failed block keeps its nil UploadedAt and retries next
	// pass.
	uploads := s.collectUploads(merged, mergedIdx, upsertIDs)
	done := s.transferConcurrently(ctx, uploads, func(ctx context.Context, job attachmentJob) error {
		return s.blobs.Upload(ctx, job.bucket, job.filename, s.cache.CachePath(job.filename))
	})
	report.Uploaded = len(done)
	report.UploadErrors = len(uploads) - len(done)

	now := models.Now()
	for _, job := range done {
		fp, _ := merged[job.noteIdx].Content[job.blockIdx].File()
		fp.UploadedAt = &now
		merged[job.noteIdx].Content[job.blockIdx].SetFile(fp)
	}

	// Push rows only after the upload phase settled so no row claims an
	// upload that did not happen.
	if len(upsertIDs) > 0 {
		rows := make([]models.Row, 0, len(upsertIDs))
		for _, id := range upsertIDs {
			n := merged[mergedIdx[id]]
			rows = append(rows, models.Row{
				ID:        n.ID,
				UserID:    owner.ID,
				Email:     owner.Email,
				UpdatedAt: n.UpdatedAt,
				CreatedAt: n.CreatedAt,
				IsDeleted: n.IsDeleted,
				Note:      n,
			})
		}
		if err := s.rows.UpsertRows(ctx, rows); err != nil {
			return nil, fmt.Errorf("failed to upsert notes: %w", err)
		}
		report.Upserted = len(rows)
	}

	// Pull attachments referenced by live merged notes that are not cached
	// yet. Cached files are never re-fetched.
	downloads := s.collectDownloads(merged)
	pulled := s.transferConcurrently(ctx, downloads, func(ctx context.Context, job attachmentJob) error {
		_, err := s.cache.FetchRemoteFile(ctx, job.bucket, job.filename)
		return err
	})
	report.Downloaded = len(pulled)
	report.DownloadErrors = len(downloads) - len(pulled)

	for _, job := range pulled {
		fp, _ := merged[job.noteIdx].Content[job.blockIdx].File()
		fp.URI = s.cache.CachePath(job.filename)
		merged[job.noteIdx].Content[job.blockIdx].SetFile(fp)
	}

	if err := s.store.ReplaceAll(ctx, merged); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "sync finished",
		"fetchedNew", report.FetchedNew,
		"fetchedUpdated", report.FetchedUpdated,
		"upserted", report.Upserted,
		"uploaded", report.Uploaded,
		"uploadErrors", report.UploadErrors,
		"downloaded", report.Downloaded,
		"downloadErrors", report.DownloadErrors,
	)
	return report, nil
}

// stageNoteAttachments assigns a cache filename to every unstaged attachment
// block and copies its source file into the cache. A failure leaves the block
// unstaged; it is then excluded from the upload queue.
func (s *SyncService) stageNoteAttachments(ctx context.Context, n *models.Note) {
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

func (s *SyncService) collectUploads(merged []models.Note, mergedIdx map[string]int, upsertIDs []string) []attachmentJob {
	var jobs []attachmentJob
	for _, id := range upsertIDs {
		idx := mergedIdx[id]
		for _, i := range merged[idx].Attachments() {
			fp, _ := merged[idx].Content[i].File()
			if fp.Filename == "" || fp.UploadedAt != nil {
				continue
			}
			bucket, _ := merged[idx].Content[i].Bucket()
			jobs = append(jobs, attachmentJob{noteIdx: idx, blockIdx: i, bucket: bucket, filename: fp.Filename})
		}
	}
	return jobs
}

func (s *SyncService) collectDownloads(merged []models.Note) []attachmentJob {
	var jobs []attachmentJob
	for idx, n := range merged {
		if n.IsDeleted {
			continue
		}
		for _, i := range n.Attachments() {
			fp, _ := n.Content[i].File()
			if fp.Filename == "" || s.cache.IsCached(fp.Filename) {
				continue
			}
			bucket, _ := n.Content[i].Bucket()
			jobs = append(jobs, attachmentJob{noteIdx: idx, blockIdx: i, bucket: bucket, filename: fp.Filename})
		}
	}
	return jobs
}

// transferConcurrently runs fn for every job with bounded parallelism and
// returns the jobs that succeeded. Individual failures are logged, never
// propagated.
func (s *SyncService) transferConcurrently(ctx context.Context, jobs []attachmentJob, fn func(context.Context, attachmentJob) error) []attachmentJob {
	if len(jobs) == 0 {
		return nil
	}

	var mu sync.Mutex
	var done []attachmentJob

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(transferWorkers)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if err := fn(gctx, job); err != nil {
				s.log.Warn(gctx, "attachment transfer failed", "filename", job.filename, "error", err)
				return nil
			}
			mu.Lock()
			done = append(done, job)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return done
}
