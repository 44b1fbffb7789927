package internal

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-runs a callback whenever a watched file is written to.
type Watcher struct {
	watcher    *fsnotify.Watcher
	watchPaths []string
	onChange   func(path string)
	isWatching bool
}

func NewWatcher(paths []string, onChange func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating file watcher: %w", err)
	}
	return &Watcher{
		watcher:    fw,
		watchPaths: paths,
		onChange:   onChange,
	}, nil
}

func (w *Watcher) Start() error {
	if w.isWatching {
		return fmt.Errorf("already watching")
	}

	for _, p := range w.watchPaths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("error accessing %s: %w", p, err)
		}
		if !info.IsDir() {
			if err := w.watcher.Add(p); err != nil {
				return fmt.Errorf("error adding file to watcher: %w", err)
			}
			continue
		}
		err = filepath.Walk(p, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	w.isWatching = true
	go w.watchLoop()
	return nil
}

func (w *Watcher) Stop() error {
	if !w.isWatching {
		log.Println("not watching")
	}

	w.isWatching = false
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for w.isWatching {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("error: %v", err)
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write == fsnotify.Write {
		// wait for a while after file change to consider multiple changes as one
		time.Sleep(100 * time.Millisecond)
		w.onChange(event.Name)
	}
}
