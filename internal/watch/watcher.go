package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"pipoca/internal/fileutil"
	"pipoca/internal/logging"
)

const defaultDebounce = 2 * time.Second

// Options tunes watcher behavior.
type Options struct {
	// Debounce is how long the folder must stay quiet after the last
	// relevant event before a trigger fires. Zero selects the default.
	Debounce time.Duration
}

// Watcher monitors a library folder tree and coalesces bursts of file
// events into single triggers. Copies in progress typically produce many
// write events for one file; the debounce window absorbs them.
type Watcher struct {
	logger   *slog.Logger
	root     string
	debounce time.Duration
	fw       *fsnotify.Watcher
	triggers chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher over root and registers every existing
// subdirectory. Run must be called before triggers are delivered.
func New(logger *slog.Logger, root string, opts Options) (*Watcher, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat watch folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch folder %q is not a directory", root)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w := &Watcher{
		logger:   logging.NewComponentLogger(logger, "watch"),
		root:     root,
		debounce: debounce,
		fw:       fw,
		triggers: make(chan struct{}, 1),
	}

	if err := w.addTree(root); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// Triggers returns the channel that fires after the folder settles.
func (w *Watcher) Triggers() <-chan struct{} {
	return w.triggers
}

// Run processes events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", logging.Error(err))
		}
	}
}

// Close releases the underlying filesystem watches.
func (w *Watcher) Close() error {
	w.stopTimer()
	return w.fw.Close()
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// Inaccessible subtrees are skipped rather than failing the watch.
			return nil
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fw.Add(path); err != nil {
			w.logger.Warn("watch folder skipped", logging.String("path", path), logging.Error(err))
		}
		return nil
	})
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, ".tmp") || strings.HasSuffix(base, ".part") {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("watch new folder failed", logging.String("path", event.Name), logging.Error(err))
			}
			return
		}
	}

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}
	if !fileutil.IsVideoFile(event.Name) {
		return
	}

	w.logger.Debug("video file event", logging.String("path", event.Name), logging.String("op", event.Op.String()))
	w.resetTimer()
}

func (w *Watcher) resetTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.triggers <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
