package server

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchedExtensions are the site file types a change to which triggers a
// reload broadcast.
var watchedExtensions = map[string]bool{
	".html": true,
	".tmpl": true,
	".css":  true,
	".js":   true,
	".json": true,
	".yaml": true,
}

// Watcher debounces filesystem events under the site directory into reload
// broadcasts.
type Watcher struct {
	dir      string
	debounce time.Duration
	hub      *Hub
	fsw      *fsnotify.Watcher
}

// NewWatcher watches dir and its subdirectories.
func NewWatcher(dir string, debounce time.Duration, hub *Hub) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Subdirectories have to be added one by one; fsnotify is not recursive.
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != dir && (name == ".git" || name == ".data" || name == "node_modules") {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
	if err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{dir: dir, debounce: debounce, hub: hub, fsw: fsw}, nil
}

// Run pumps filesystem events until ctx is canceled. Bursts of events
// within the debounce window collapse into a single reload.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()
	log.Printf("event=watch_started dir=%s debounce=%s", w.dir, w.debounce)

	var pending *time.Timer
	fire := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			if pending != nil {
				pending.Stop()
			}
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				// New directories need watching too.
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					_ = w.fsw.Add(event.Name)
					continue
				}
			}
			if !watchedExtensions[filepath.Ext(event.Name)] {
				continue
			}
			if pending == nil {
				pending = time.AfterFunc(w.debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				pending.Reset(w.debounce)
			}
		case <-fire:
			pending = nil
			log.Printf("event=site_changed dir=%s", w.dir)
			w.hub.Broadcast("reload")
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("event=watch_error err=%v", err)
		}
	}
}
