package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcherReportsChangedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "default.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o644))

	var changed []string
	w := NewFileWatcher([]string{path}, time.Hour, func(p string) { changed = append(changed, p) })
	w.scanAll(true)
	w.scanAll(false)
	assert.Empty(t, changed)

	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	w.scanAll(false)
	assert.Equal(t, []string{path}, changed)
}

func TestFileWatcherReportsNewFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prod.yaml")

	var changed []string
	w := NewFileWatcher([]string{path}, time.Hour, func(p string) { changed = append(changed, p) })
	w.scanAll(true)
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))
	w.scanAll(false)
	assert.Equal(t, []string{path}, changed)
}

func TestWatchLoaderAppliesValidConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", "log:\n  level: info\n")
	l := newTestLoader(dir, "", nil)

	var applied []string
	var errs []error
	w := WatchLoader(l, time.Hour, func(c Config) { applied = append(applied, c.Log.Level) }, func(err error) { errs = append(errs, err) })
	w.scanAll(true)

	writeFile(t, dir, "default.yaml", "log:\n  level: debug\n")
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "default.yaml"), later, later))
	w.scanAll(false)
	assert.Equal(t, []string{"debug"}, applied)

	writeFile(t, dir, "default.yaml", "log:\n  level: shouty\n")
	later = later.Add(time.Minute)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "default.yaml"), later, later))
	w.scanAll(false)
	assert.Equal(t, []string{"debug"}, applied)
	assert.Len(t, errs, 1)
}

func TestFileWatcherStopTwice(t *testing.T) {
	w := NewFileWatcher(nil, time.Millisecond, nil)
	w.Start()
	w.Stop()
	w.Stop()
}
