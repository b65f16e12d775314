package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports directories below root whose content changed. Events are
// debounced per directory, a burst of writes yields a single callback.
type Watcher struct {
	root     string
	debounce time.Duration
	onChange func(rel string)
	logger   *zap.Logger

	watcher *fsnotify.Watcher

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewWatcher creates a watcher. onChange receives the changed directory,
// relative to root, "" for root itself.
func NewWatcher(root string, debounce time.Duration, onChange func(rel string), logger *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		root:     abs,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		watcher:  fw,
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()

	count := w.addTree(w.root)
	w.logger.Info("Watching gallery", zap.String("root", w.root), zap.Int("directories", count))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", zap.Error(err))
		}
	}
}

// addTree watches dir and every non hidden directory below it.
func (w *Watcher) addTree(dir string) int {
	count := 0
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			w.logger.Warn("Failed to watch directory", zap.String("path", p), zap.Error(err))
			return nil
		}
		count++
		return nil
	})
	return count
}

func (w *Watcher) handle(event fsnotify.Event) {
	if strings.HasPrefix(filepath.Base(event.Name), ".") && !strings.HasSuffix(event.Name, ".pg2conf") {
		return
	}
	if event.Op&fsnotify.Create != 0 {
		if w.isDir(event.Name) {
			w.addTree(event.Name)
		}
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	rel, err := filepath.Rel(w.root, filepath.Dir(event.Name))
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		rel = ""
	}
	w.schedule(rel)
}

func (w *Watcher) schedule(rel string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[rel]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[rel] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, rel)
		w.mu.Unlock()
		w.onChange(rel)
	})
}

func (w *Watcher) isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

func (w *Watcher) stop() {
	w.mu.Lock()
	for rel, t := range w.timers {
		t.Stop()
		delete(w.timers, rel)
	}
	w.mu.Unlock()
	_ = w.watcher.Close()
}
