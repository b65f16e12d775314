package scanner

import (
	"context"
	"testing"
	"time"

	"gallery-index/feature/gallery/models"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func writeFile(t *testing.T, fsys afero.Fs, name, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, name, []byte(content), 0o644))
	require.NoError(t, fsys.Chtimes(name, mtime, mtime))
}

func galleryFs(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	mtime := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, fsys.MkdirAll("/vacation/day1", 0o755))
	require.NoError(t, fsys.MkdirAll("/vacation/.thumbs", 0o755))
	writeFile(t, fsys, "/vacation/a.jpg", "aaaa", mtime)
	writeFile(t, fsys, "/vacation/b.JPG", "bb", mtime)
	writeFile(t, fsys, "/vacation/c.mp4", "cccccc", mtime)
	writeFile(t, fsys, "/vacation/track.gpx", "<gpx/>", mtime)
	writeFile(t, fsys, "/vacation/"+models.SavedSearchesFile, `[{"name":"Beach","searchQuery":{"text":"beach"}}]`, mtime)
	writeFile(t, fsys, "/vacation/.DS_Store", "x", mtime)
	writeFile(t, fsys, "/vacation/readme.txt", "x", mtime)
	for _, n := range []string{"1.jpg", "2.jpg", "3.jpg"} {
		writeFile(t, fsys, "/vacation/day1/"+n, "x", mtime)
	}
	return fsys
}

func TestDiskScanner_Scan(t *testing.T) {
	s := NewDiskScannerFs(galleryFs(t), 2)
	s.now = func() time.Time { return fixedNow }

	snap, err := s.Scan(context.Background(), "vacation")
	require.NoError(t, err)

	assert.Equal(t, "vacation", snap.Name)
	assert.Equal(t, "./", snap.Path)
	require.NotNil(t, snap.LastScanned)
	assert.Equal(t, fixedNow.UnixMilli(), *snap.LastScanned)
	assert.Equal(t, 3, snap.MediaCount)

	require.Len(t, snap.Media, 3)
	assert.Equal(t, "a.jpg", snap.Media[0].Name)
	assert.Equal(t, models.KindPhoto, snap.Media[0].Kind)
	assert.Equal(t, int64(4), snap.Media[0].Photo.Size)
	assert.Equal(t, models.KindPhoto, snap.Media[1].Kind, "extensions are case insensitive")
	assert.Equal(t, models.KindVideo, snap.Media[2].Kind)
	assert.Equal(t, "a.jpg", snap.Preview.Name)

	var metaNames []string
	for _, f := range snap.MetaFiles {
		metaNames = append(metaNames, f.Name)
	}
	assert.ElementsMatch(t, []string{"track.gpx", models.SavedSearchesFile}, metaNames)

	require.Len(t, snap.Directories, 1, "hidden directories are skipped")
	day1 := snap.Directories[0]
	assert.Equal(t, "day1", day1.Name)
	assert.Equal(t, "vacation/", day1.Path)
	assert.Nil(t, day1.LastScanned)
	assert.Equal(t, 3, day1.MediaCount)
	assert.Len(t, day1.Media, 2, "preview limited")
}

func TestDiskScanner_Root(t *testing.T) {
	s := NewDiskScannerFs(galleryFs(t), 1)

	snap, err := s.Scan(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, models.RootName, snap.Name)
	assert.Equal(t, models.RootPath, snap.Path)
	require.Len(t, snap.Directories, 1)
	assert.Equal(t, "./", snap.Directories[0].Path)
}

func TestDiskScanner_Errors(t *testing.T) {
	s := NewDiskScannerFs(galleryFs(t), 1)
	ctx := context.Background()

	_, err := s.Scan(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Scan(ctx, "vacation/a.jpg")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Scan(ctx, "../etc")
	assert.ErrorIs(t, err, ErrOutsideRoot)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Scan(cancelled, "vacation")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiskScanner_ReadAuxFile(t *testing.T) {
	s := NewDiskScannerFs(galleryFs(t), 1)
	ctx := context.Background()

	data, err := s.ReadAuxFile(ctx, "vacation", models.SavedSearchesFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Beach")

	_, err = s.ReadAuxFile(ctx, "vacation", "nope.md")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.ReadAuxFile(ctx, "vacation", "../secret")
	assert.ErrorIs(t, err, ErrOutsideRoot)
}

func TestNewDiskScanner_OsRoot(t *testing.T) {
	root := t.TempDir()
	s := NewDiskScanner(root, 1)
	snap, err := s.Scan(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, snap.Media)
}

func TestConfig_WatchDebounce(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, Config{}.WatchDebounce())
	assert.Equal(t, 50*time.Millisecond, Config{WatchDebounceMS: 50}.WatchDebounce())
}
