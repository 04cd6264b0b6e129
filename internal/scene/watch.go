package scene

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/castle/internal/logger"
)

// reloadDelay coalesces the bursts of writes editors make when saving.
const reloadDelay = 100 * time.Millisecond

// Update is the result of reloading a watched layout.
type Update struct {
	Layout *Layout
	Err    error
}

// Watcher reloads a layout file whenever it changes on disk. Results are
// delivered on a channel of capacity one holding only the newest update,
// to be drained from the render thread.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	updates chan Update
	done    chan struct{}
	wg      sync.WaitGroup
	log     *zap.Logger
}

// Watch starts watching path. The parent directory is watched so editors
// that save by rename are noticed.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch layout: %w", err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch layout: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch layout: %w", err)
	}

	w := &Watcher{
		path:    abs,
		fs:      fs,
		updates: make(chan Update, 1),
		done:    make(chan struct{}),
		log:     logger.Named("scene.watch"),
	}
	w.wg.Add(1)
	go w.run()

	w.log.Info("watching layout", zap.String("path", abs))
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()

	timer := time.NewTimer(reloadDelay)
	timer.Stop()

	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				timer.Reset(reloadDelay)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-timer.C:
			l, err := Load(w.path)
			w.publish(Update{Layout: l, Err: err})

		case <-w.done:
			timer.Stop()
			return
		}
	}
}

// publish replaces any unread update with u.
func (w *Watcher) publish(u Update) {
	select {
	case <-w.updates:
	default:
	}
	w.updates <- u
}

// Updates returns the channel reloaded layouts arrive on.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Poll returns a pending update without blocking.
func (w *Watcher) Poll() (Update, bool) {
	select {
	case u := <-w.updates:
		return u, true
	default:
		return Update{}, false
	}
}

// Close stops watching and waits for the watch goroutine to exit.
func (w *Watcher) Close() error {
	close(w.done)
	w.wg.Wait()
	return w.fs.Close()
}
