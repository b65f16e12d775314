package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"time"

	"gallery-index/feature/gallery/models"

	"github.com/spf13/afero"
)

// DiskScanner produces snapshots from a directory tree.
type DiskScanner struct {
	fs              afero.Fs
	childMediaLimit int
	now             func() time.Time
}

// NewDiskScanner scans the tree below root on the local filesystem.
func NewDiskScanner(root string, childMediaLimit int) *DiskScanner {
	return NewDiskScannerFs(afero.NewBasePathFs(afero.NewOsFs(), root), childMediaLimit)
}

// NewDiskScannerFs scans the tree of an arbitrary afero filesystem.
func NewDiskScannerFs(fsys afero.Fs, childMediaLimit int) *DiskScanner {
	return &DiskScanner{fs: fsys, childMediaLimit: childMediaLimit, now: time.Now}
}

// Scan lists the directory at rel with its files and its children one level deep.
func (s *DiskScanner) Scan(ctx context.Context, rel string) (*models.DirectorySnapshot, error) {
	dir, err := resolve(rel)
	if err != nil {
		return nil, err
	}

	info, err := s.fs.Stat(dir)
	if err != nil {
		return nil, statError(rel, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, rel)
	}

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rel, err)
	}

	name, dirPath := models.SplitPath(rel)
	scanned := s.now().UnixMilli()
	snap := &models.DirectorySnapshot{
		Name:         name,
		Path:         dirPath,
		LastModified: info.ModTime().UnixMilli(),
		LastScanned:  &scanned,
		Directories:  []*models.DirectorySnapshot{},
		Media:        []*models.MediaRecord{},
		MetaFiles:    []*models.AuxFile{},
	}
	childPath := models.ChildPath(name, dirPath)

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() {
			if hiddenDir(e.Name()) {
				continue
			}
			child, err := s.child(path.Join(dir, e.Name()), e, childPath)
			if err != nil {
				return nil, err
			}
			snap.Directories = append(snap.Directories, child)
			continue
		}

		switch kind := classify(e.Name()); kind {
		case entryPhoto, entryVideo:
			snap.Media = append(snap.Media, mediaRecord(kind, e.Name(), e.Size(), e.ModTime()))
		case entryMeta:
			snap.MetaFiles = append(snap.MetaFiles, &models.AuxFile{Name: e.Name(), Size: e.Size()})
		}
	}

	snap.MediaCount = len(snap.Media)
	snap.Preview = pickPreview(snap.Media)
	return snap, nil
}

// child describes a sub directory without recursing: its media count and
// the first childMediaLimit media.
func (s *DiskScanner) child(dir string, info fs.FileInfo, dirPath string) (*models.DirectorySnapshot, error) {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	child := &models.DirectorySnapshot{
		Name:         info.Name(),
		Path:         dirPath,
		LastModified: info.ModTime().UnixMilli(),
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		kind := classify(e.Name())
		if kind != entryPhoto && kind != entryVideo {
			continue
		}
		child.MediaCount++
		if len(child.Media) < s.childMediaLimit {
			child.Media = append(child.Media, mediaRecord(kind, e.Name(), e.Size(), e.ModTime()))
		}
	}
	child.Preview = pickPreview(child.Media)
	return child, nil
}

// ReadAuxFile returns the content of a meta file of the directory at relDir.
func (s *DiskScanner) ReadAuxFile(ctx context.Context, relDir, fileName string) ([]byte, error) {
	dir, err := resolve(relDir)
	if err != nil {
		return nil, err
	}
	if path.Base(fileName) != fileName {
		return nil, ErrOutsideRoot
	}
	data, err := afero.ReadFile(s.fs, path.Join(dir, fileName))
	if err != nil {
		return nil, statError(path.Join(relDir, fileName), err)
	}
	return data, nil
}

func statError(rel string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, rel)
	}
	return fmt.Errorf("stat %s: %w", rel, err)
}
