package ui

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesnorm/domain/table"
	"salesnorm/internal/config"
	apperrors "salesnorm/internal/errors"
)

func TestStorePutGet(t *testing.T) {
	store := NewWorkbookStore(config.UploadConfig{Retention: time.Hour})
	store.Put(&Upload{ID: "abc", CreatedAt: time.Now()})

	got, err := store.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", got.ID)

	_, err = store.Get("missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.GetCode(err))
}

func TestStoreSetResult(t *testing.T) {
	store := NewWorkbookStore(config.UploadConfig{Retention: time.Hour})
	store.Put(&Upload{ID: "abc", CreatedAt: time.Now()})

	require.NoError(t, store.SetResult("abc", "Report", table.NewTable()))
	got, err := store.Get("abc")
	require.NoError(t, err)
	assert.NotNil(t, got.Result)
	assert.Equal(t, "Report", got.ResultSheet)

	assert.Error(t, store.SetResult("missing", "Report", table.NewTable()))
}

func TestStoreConcurrentResultAccess(t *testing.T) {
	store := NewWorkbookStore(config.UploadConfig{Retention: time.Hour})
	store.Put(&Upload{ID: "abc", CreatedAt: time.Now()})

	// One writer re-normalizing, one reader exporting the same token; the
	// reader must only ever see a consistent snapshot.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			assert.NoError(t, store.SetResult("abc", "Report", table.NewTable()))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			got, err := store.Get("abc")
			if !assert.NoError(t, err) {
				return
			}
			if got.Result != nil {
				assert.Equal(t, "Report", got.ResultSheet)
			}
		}
	}()
	wg.Wait()
}

func TestStoreEvictsExpiredUploads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stale.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	store := NewWorkbookStore(config.UploadConfig{Retention: time.Millisecond})
	store.Put(&Upload{ID: "stale", Path: path, CreatedAt: time.Now().Add(-time.Minute)})

	_, err := store.Get("stale")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.GetCode(err))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
