package main

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watch validates a document again each time it is written or replaced,
// until ctx is done. Directories are watched rather than files, so editors
// that save by renaming are followed.
func (a *app) watch(ctx context.Context, paths []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	docs := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		docs[abs] = p
		if dir := filepath.Dir(abs); !dirs[dir] {
			if err := w.Add(dir); err != nil {
				return err
			}
			dirs[dir] = true
		}
	}
	a.log.Debug("watching model documents", "documents", len(docs), "directories", len(dirs))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			path, ok := docs[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}
			a.log.Debug("model document changed", "path", path, "op", ev.Op.String())
			if err := a.out.report(a.validate(path)); err != nil {
				return err
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watch error", "error", err)
		}
	}
}
