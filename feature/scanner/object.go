package scanner

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"gallery-index/core/storage"
	"gallery-index/feature/gallery/models"

	"github.com/minio/minio-go/v7"
)

// ObjectScanner produces snapshots from an S3 compatible bucket, treating
// "/" separated key prefixes as directories.
type ObjectScanner struct {
	client          storage.Client
	bucket          string
	prefix          string
	childMediaLimit int
	now             func() time.Time
}

// NewObjectScanner scans the objects below prefix in bucket.
func NewObjectScanner(client storage.Client, bucket, prefix string, childMediaLimit int) *ObjectScanner {
	return &ObjectScanner{
		client:          client,
		bucket:          bucket,
		prefix:          strings.Trim(prefix, "/"),
		childMediaLimit: childMediaLimit,
		now:             time.Now,
	}
}

// Check verifies that the gallery bucket exists.
func (s *ObjectScanner) Check(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !ok {
		return fmt.Errorf("%w: bucket %s", ErrNotFound, s.bucket)
	}
	return nil
}

// keyPrefix maps a resolved directory to its listing prefix.
func (s *ObjectScanner) keyPrefix(dir string) string {
	p := strings.Trim(path.Join(s.prefix, dir), "/")
	if p == "" || p == "." {
		return ""
	}
	return p + "/"
}

// Scan lists the directory at rel with its files and its children one level deep.
func (s *ObjectScanner) Scan(ctx context.Context, rel string) (*models.DirectorySnapshot, error) {
	dir, err := resolve(rel)
	if err != nil {
		return nil, err
	}
	prefix := s.keyPrefix(dir)

	// Returning mid-listing must release minio's listing goroutine
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	name, dirPath := models.SplitPath(rel)
	scanned := s.now().UnixMilli()
	snap := &models.DirectorySnapshot{
		Name:        name,
		Path:        dirPath,
		LastScanned: &scanned,
		Directories: []*models.DirectorySnapshot{},
		Media:       []*models.MediaRecord{},
		MetaFiles:   []*models.AuxFile{},
	}
	childPath := models.ChildPath(name, dirPath)

	found := false
	var children []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list %s: %w", rel, obj.Err)
		}
		found = true

		rest := strings.TrimPrefix(obj.Key, prefix)
		if rest == "" {
			continue
		}
		if strings.HasSuffix(rest, "/") {
			if child := strings.TrimSuffix(rest, "/"); !hiddenDir(child) {
				children = append(children, child)
			}
			continue
		}

		if mt := obj.LastModified.UnixMilli(); mt > snap.LastModified {
			snap.LastModified = mt
		}
		switch kind := classify(rest); kind {
		case entryPhoto, entryVideo:
			snap.Media = append(snap.Media, mediaRecord(kind, rest, obj.Size, obj.LastModified))
		case entryMeta:
			snap.MetaFiles = append(snap.MetaFiles, &models.AuxFile{Name: rest, Size: obj.Size})
		}
	}
	if !found && prefix != "" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, rel)
	}

	for _, c := range children {
		child, err := s.child(ctx, prefix+c+"/", c, childPath)
		if err != nil {
			return nil, err
		}
		snap.Directories = append(snap.Directories, child)
	}

	snap.MediaCount = len(snap.Media)
	snap.Preview = pickPreview(snap.Media)
	return snap, nil
}

func (s *ObjectScanner) child(ctx context.Context, prefix, name, dirPath string) (*models.DirectorySnapshot, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	child := &models.DirectorySnapshot{Name: name, Path: dirPath}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list %s: %w", prefix, obj.Err)
		}
		rest := strings.TrimPrefix(obj.Key, prefix)
		if rest == "" || strings.HasSuffix(rest, "/") {
			continue
		}
		if mt := obj.LastModified.UnixMilli(); mt > child.LastModified {
			child.LastModified = mt
		}
		kind := classify(rest)
		if kind != entryPhoto && kind != entryVideo {
			continue
		}
		child.MediaCount++
		if len(child.Media) < s.childMediaLimit {
			child.Media = append(child.Media, mediaRecord(kind, rest, obj.Size, obj.LastModified))
		}
	}
	child.Preview = pickPreview(child.Media)
	return child, nil
}

// ReadAuxFile downloads a meta file of the directory at relDir.
func (s *ObjectScanner) ReadAuxFile(ctx context.Context, relDir, fileName string) ([]byte, error) {
	dir, err := resolve(relDir)
	if err != nil {
		return nil, err
	}
	if path.Base(fileName) != fileName {
		return nil, ErrOutsideRoot
	}
	key := s.keyPrefix(dir) + fileName

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, objectError(key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, objectError(key, err)
	}
	return data, nil
}

func objectError(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return fmt.Errorf("get %s: %w", key, err)
}
