package ui

import (
	"log"
	"os"
	"sync"
	"time"

	"salesnorm/domain/table"
	"salesnorm/internal/config"
	"salesnorm/internal/errors"
)

// Upload is one uploaded workbook and, once a sheet has been normalized,
// its cached canonical table. The table is replaced wholesale on each
// normalize call, never mutated in place.
type Upload struct {
	ID           string
	Path         string
	OriginalName string
	Sheets       []string
	CreatedAt    time.Time

	Result      *table.Table
	ResultSheet string
}

// WorkbookStore keeps uploaded workbooks in memory, keyed by upload token.
// Entries past the configured retention are evicted on access; there is no
// background sweeper.
type WorkbookStore struct {
	mu      sync.RWMutex
	uploads map[string]*Upload
	cfg     config.UploadConfig
}

// NewWorkbookStore creates an empty store.
func NewWorkbookStore(cfg config.UploadConfig) *WorkbookStore {
	return &WorkbookStore{
		uploads: make(map[string]*Upload),
		cfg:     cfg,
	}
}

// Put registers an upload.
func (s *WorkbookStore) Put(u *Upload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked(time.Now())
	s.uploads[u.ID] = u
}

// Get returns a snapshot of the upload for a token, or a NOT_FOUND error.
// A copy is returned rather than the stored pointer so callers never read
// Result/ResultSheet concurrently with a SetResult write; the Table behind
// the Result pointer is immutable once stored, so sharing it is safe.
func (s *WorkbookStore) Get(id string) (Upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked(time.Now())

	u, ok := s.uploads[id]
	if !ok {
		return Upload{}, errors.NotFound("workbook")
	}
	return *u, nil
}

// SetResult caches the normalized table for an upload.
func (s *WorkbookStore) SetResult(id, sheet string, t *table.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.uploads[id]
	if !ok {
		return errors.NotFound("workbook")
	}
	u.Result = t
	u.ResultSheet = sheet
	return nil
}

func (s *WorkbookStore) evictExpiredLocked(now time.Time) {
	for id, u := range s.uploads {
		if now.Sub(u.CreatedAt) <= s.cfg.Retention {
			continue
		}
		delete(s.uploads, id)
		if err := os.Remove(u.Path); err != nil && !os.IsNotExist(err) {
			log.Printf("[WorkbookStore] Failed to remove expired upload %s: %v", u.Path, err)
		}
	}
}
