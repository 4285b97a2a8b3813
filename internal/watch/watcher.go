// Copyright 2012 Arne Roomann-Kurrik
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package watch reruns the content build when source files change.
package watch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/howeyc/fsnotify"
	"github.com/kurrik/fauxfile"

	"github.com/rimajibe/rim-website/internal/fsutil"
)

// Time to wait after the last event before rebuilding.
const Delay = 200 * time.Millisecond

// State for fs notify wrapper.
type Watcher struct {
	watcher *fsnotify.Watcher
	roots   []string
	fs      fauxfile.Filesystem
	log     *log.Logger
	rebuild func() error
	delay   time.Duration
	mu      sync.Mutex
}

// Creates a Watcher calling rebuild whenever something under roots changes.
func New(fs fauxfile.Filesystem, roots []string, rebuild func() error) *Watcher {
	return &Watcher{
		roots:   roots,
		fs:      fs,
		log:     log.New(os.Stderr, "", log.LstdFlags),
		rebuild: rebuild,
		delay:   Delay,
	}
}

// Replaces the logger.
func (w *Watcher) SetLogger(l *log.Logger) {
	w.log = l
}

// Returns the closest existing directory at or above path.
func (w *Watcher) nearestDir(path string) string {
	for {
		if fsutil.IsDir(w.fs, path) {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}

// Sets up filesystem notices for all directories under each root, inclusive.
// A root that does not exist yet is watched through its closest existing
// parent so its creation is noticed.
// Can be called multiple times; directories already watched are kept.
func (w *Watcher) WatchDirs() (err error) {
	var (
		queue     []string
		dir       string
		filenames []string
	)
	if w.watcher == nil {
		if w.watcher, err = fsnotify.NewWatcher(); err != nil {
			return
		}
	}
	for _, root := range w.roots {
		if fsutil.IsDir(w.fs, root) {
			queue = append(queue, root)
			continue
		}
		dir = w.nearestDir(root)
		w.log.Printf("Watching %v for %v\n", dir, root)
		if err = w.watcher.Watch(dir); err != nil {
			return
		}
	}
	for len(queue) > 0 {
		dir = queue[0]
		queue = queue[1:]
		w.log.Printf("Watching %v\n", dir)
		if err = w.watcher.Watch(dir); err != nil {
			return
		}
		if filenames, err = fsutil.ReadDir(w.fs, dir); err != nil {
			// Removed while walking; the delete event re-arms.
			w.log.Printf("Error: %v, skipping\n", err)
			err = nil
			continue
		}
		for _, filename := range filenames {
			if path := filepath.Join(dir, filename); fsutil.IsDir(w.fs, path) {
				queue = append(queue, path)
			}
		}
	}
	return
}

// Listen for FS events and signal work when something changes.
// Will send errors over e.
func (w *Watcher) handle(work chan bool, e chan error) {
	var (
		evt *fsnotify.FileEvent
		ok  bool
		err error
	)
	for {
		select {
		case evt, ok = <-w.watcher.Event:
			if !ok {
				return
			}
			w.log.Printf("Filesystem changed: %v\n", evt.String())
			isNewDir := evt.IsCreate() && fsutil.IsDir(w.fs, evt.Name)
			if isNewDir || evt.IsDelete() || evt.IsRename() {
				if err = w.WatchDirs(); err != nil {
					e <- err
					return
				}
			}
			select {
			case work <- true:
			default:
				// Work already queued.
			}
		case err, ok = <-w.watcher.Error:
			if !ok {
				return
			}
			e <- err
			return
		}
	}
}

// Runs the rebuild, logging instead of returning its error.
func (w *Watcher) process() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.log.Printf("Processing content:\n")
	if err := w.rebuild(); err != nil {
		w.log.Printf("Build failed: %v\n", err)
	}
}

// Builds once, then rebuilds after changes until stop is closed or the
// watcher fails.
func (w *Watcher) Run(stop <-chan struct{}) (err error) {
	var (
		working bool = true
		timer   *time.Timer
	)
	var (
		errors = make(chan error, 1)
		work   = make(chan bool, 1)
	)
	if err = w.WatchDirs(); err != nil {
		return
	}
	defer w.watcher.Close()
	go w.handle(work, errors)
	work <- true // Enqueue one build for startup.
	for working {
		select {
		case <-work:
			// Many notifications arrive for a single save, so the
			// build waits for the events to settle.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.delay, w.process)
		case err = <-errors:
			err = fmt.Errorf("watch: %w", err)
			working = false
		case <-stop:
			working = false
		}
	}
	if timer != nil {
		timer.Stop()
	}
	return
}
