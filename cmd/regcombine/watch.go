package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"
)

// debounce is how long a file must stay quiet before it is regenerated.
// Editors often write a file in several steps.
const debounce = 100 * time.Millisecond

func watchCommand(c *cli.Context) error {
	patterns := c.Args().Slice()
	files, err := expandGlobs(patterns)
	if err != nil {
		return err
	}
	if err := generateFiles(c, files); err != nil {
		return err
	}

	w, err := newWatcher(patterns, files)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintf(c.App.ErrWriter, "watching %d director%s\n", len(w.dirs), plural(len(w.dirs), "y", "ies"))
	return w.run(c.Context, func(path string) {
		if err := generateFiles(c, []string{path}); err != nil {
			fmt.Fprintf(c.App.ErrWriter, "error: %v\n", err)
		}
	})
}

// watcher reports writes to files matching a set of globs.
type watcher struct {
	fs       *fsnotify.Watcher
	patterns []string
	dirs     []string
}

// newWatcher watches the directories holding files and the base directory of every pattern,
// so files created later are picked up as well.
func newWatcher(patterns, files []string) (*watcher, error) {
	set := make(map[string]bool)
	for _, f := range files {
		set[filepath.Dir(f)] = true
	}
	for _, p := range patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(p))
		set[filepath.Clean(filepath.FromSlash(base))] = true
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &watcher{fs: fsw, patterns: patterns}
	for dir := range set {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.dirs = append(w.dirs, dir)
	}
	sort.Strings(w.dirs)
	return w, nil
}

func (w *watcher) Close() error {
	return w.fs.Close()
}

// matches reports whether path is selected by one of the watched globs.
func (w *watcher) matches(path string) bool {
	path = filepath.Clean(path)
	for _, p := range w.patterns {
		if ok, _ := doublestar.PathMatch(filepath.Clean(p), path); ok {
			return true
		}
	}
	return false
}

// run calls changed for every matching file once it has been quiet for the debounce
// interval, until ctx is done.
func (w *watcher) run(ctx context.Context, changed func(path string)) error {
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if w.matches(event.Name) {
				pending[filepath.Clean(event.Name)] = time.Now()
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)

		case now := <-ticker.C:
			var ready []string
			for path, at := range pending {
				if now.Sub(at) >= debounce {
					ready = append(ready, path)
				}
			}
			sort.Strings(ready)
			for _, path := range ready {
				delete(pending, path)
				changed(path)
			}
		}
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
