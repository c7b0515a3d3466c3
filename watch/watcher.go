// Package watch regenerates output when schema or config files change.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/fsdefs/config"
	"github.com/teranos/fsdefs/errors"
	"github.com/teranos/fsdefs/logger"
)

// ChangeCallback receives the files changed during one debounce period
type ChangeCallback func(changed []string) error

// Watcher watches a fixed set of files. Their parent directories are watched
// so editors that save by rename are still seen.
type Watcher struct {
	files    map[string]bool
	watcher  *fsnotify.Watcher
	callback ChangeCallback
	log      *zap.SugaredLogger

	mu             sync.Mutex
	pending        map[string]bool
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
}

// New creates a watcher for files. debounce of zero uses 300ms.
func New(files []string, debounce time.Duration, callback ChangeCallback) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New("nothing to watch")
	}
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		files:          make(map[string]bool, len(files)),
		watcher:        fw,
		callback:       callback,
		log:            logger.Named("watch"),
		pending:        make(map[string]bool),
		debouncePeriod: debounce,
	}

	dirs := map[string]bool{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", f)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
	}
	return w, nil
}

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	if config.IsBackupFile(event.Name) {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil || !w.files[abs] {
		return
	}

	w.log.Debugw("Detected change", logger.FieldFile, event.Name, "op", event.Op.String())
	w.schedule(abs)
}

// schedule debounces rapid changes into one callback
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	changed := make([]string, 0, len(w.pending))
	for p := range w.pending {
		changed = append(changed, p)
	}
	w.pending = make(map[string]bool)
	w.mu.Unlock()

	if len(changed) == 0 {
		return
	}
	sort.Strings(changed)
	w.log.Infow("Regenerating", logger.FieldCount, len(changed))
	if err := w.callback(changed); err != nil {
		w.log.Errorw("Regeneration failed", logger.FieldError, err)
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()
	_ = w.watcher.Close()
}
