package main

import (
	"github.com/fsnotify/fsnotify"
)

// Watches the dragged files so the payload can drop the ones that go away.
type filesWatcher struct {
	filenames map[string]struct{}
	w         *fsnotify.Watcher
	OnError   func(error)
	OnGone    func(filename string)
}

func newFilesWatcher() (*filesWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &filesWatcher{w: w, filenames: map[string]struct{}{}}
	fw.OnError = func(error) {}
	fw.OnGone = func(string) {}
	return fw, nil
}

func (fw *filesWatcher) Close() error {
	return fw.w.Close() // will close fw.w.{Events,Errors} chans
}

func (fw *filesWatcher) SetFiles(filenames []string) {
	seen := map[string]struct{}{}
	for _, f := range filenames {
		seen[f] = struct{}{}
		// best effort
		if err := fw.add(f); err != nil {
			fw.OnError(err)
		}
	}
	for f := range fw.filenames {
		if _, ok := seen[f]; !ok {
			_ = fw.remove(f)
		}
	}
}

func (fw *filesWatcher) add(f string) error {
	if _, ok := fw.filenames[f]; ok {
		return nil
	}
	if err := fw.w.Add(f); err != nil {
		return err
	}
	fw.filenames[f] = struct{}{}
	return nil
}

func (fw *filesWatcher) remove(f string) error {
	if _, ok := fw.filenames[f]; !ok {
		return nil
	}
	delete(fw.filenames, f)
	return fw.w.Remove(f)
}

func (fw *filesWatcher) EventLoop() {
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				fw.OnGone(ev.Name)
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			fw.OnError(err)
		}
	}
}

//----------

func without(paths []string, name string) []string {
	u := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != name {
			u = append(u, p)
		}
	}
	return u
}
