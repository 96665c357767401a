package viewer

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"brdf-viewer/scene"
)

// ModelEventKind tells whether a watched model appeared/changed or went away.
type ModelEventKind int

const (
	ModelChanged ModelEventKind = iota
	ModelRemoved
)

// ModelEvent is a change to a model file in the watched directory.
type ModelEvent struct {
	Kind ModelEventKind
	Path string
}

// Watcher reports model file changes in a directory. Events are produced
// on a background goroutine and consumed by the frame loop through Events.
type Watcher struct {
	watcher *fsnotify.Watcher
	exts    []string
	events  chan ModelEvent
	done    chan struct{}
}

// NewWatcher starts watching dir for files with one of exts.
func NewWatcher(dir string, exts []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %q: %w", dir, err)
	}

	w := &Watcher{
		watcher: fw,
		exts:    exts,
		events:  make(chan ModelEvent, 64),
		done:    make(chan struct{}),
	}
	go w.watch()
	return w, nil
}

func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !scene.HasExtension(event.Name, w.exts) {
				continue
			}
			path := filepath.Clean(event.Name)
			switch {
			case event.Op&fsnotify.Remove == fsnotify.Remove ||
				event.Op&fsnotify.Rename == fsnotify.Rename:
				w.send(ModelEvent{Kind: ModelRemoved, Path: path})
			case event.Op&fsnotify.Create == fsnotify.Create ||
				event.Op&fsnotify.Write == fsnotify.Write:
				w.send(ModelEvent{Kind: ModelChanged, Path: path})
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warningf("model watcher: %v", err)
		}
	}
}

func (w *Watcher) send(ev ModelEvent) {
	select {
	case w.events <- ev:
	case <-w.done:
	}
}

// Events returns the channel model changes are delivered on.
func (w *Watcher) Events() <-chan ModelEvent {
	return w.events
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
