package project

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports source files changing anywhere under a directory
// tree, using OS-native notifications.
type Watcher struct {
	w      *fsnotify.Watcher
	events chan string
	errors chan error
	done   chan struct{}
}

// Watch starts watching the directory and every directory below it.
func Watch(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
	if err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		w:      fsw,
		events: make(chan string, 16),
		errors: make(chan error, 1),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.events)

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create != 0 {
				// New directories join the watch set so files created
				// in them are picked up too.
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					w.w.Add(ev.Name)
					continue
				}
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if filepath.Ext(ev.Name) != SourceExtension {
				continue
			}
			// The send must stay cancelable: a full buffer with a gone
			// consumer would otherwise pin this goroutine forever.
			select {
			case w.events <- ev.Name:
			case <-w.done:
				return
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

// Events yields paths of source files created or written. The channel
// is closed once the watcher shuts down.
func (w *Watcher) Events() <-chan string { return w.events }

func (w *Watcher) Errors() <-chan error { return w.errors }

func (w *Watcher) Close() error {
	close(w.done)
	return w.w.Close()
}
