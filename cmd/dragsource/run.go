package main

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/jmigpin/dragsource"
	"github.com/jmigpin/dragsource/dnd"
	"github.com/jmigpin/dragsource/driver"
)

func run(ctx context.Context, v *viper.Viper, args []string) error {
	lv := &slog.LevelVar{}
	logger := setupLogging(v, lv)
	watchConfig(v, lv, logger)

	size, err := parseSize(v.GetString("size"))
	if err != nil {
		return err
	}
	paths, err := dnd.Files(args).Abs()
	if err != nil {
		return err
	}
	var img dnd.Image
	if s := v.GetString("image"); s != "" {
		img = dnd.FilePathImage(s)
	}

	dragsource.Configure(driver.Options{
		Display: v.GetString("display"),
		Title:   v.GetString("title"),
		Size:    size,
		Logger:  logger,
	})

	resp, err := dragsource.SetDragSource()
	if err != nil {
		return err
	}
	defer resp.Close()
	win := resp.Window()

	// ole drags are modal: one drag and done
	if runtime.GOOS == "windows" {
		if d := v.GetDuration("delay"); d > 0 {
			logger.Info("starting drag", "in", d)
			select {
			case <-time.After(d):
			case <-ctx.Done():
				return nil
			}
		}
		return dragsource.StartDrag(win, paths, img)
	}

	st := &payloadState{paths: paths, img: img, win: win, logger: logger, start: dragsource.StartDrag}
	if err := st.apply(); err != nil {
		return err
	}

	failed := make(chan error, 1)
	fw, err := newFilesWatcher()
	if err != nil {
		logger.Warn("files watcher", "err", err)
	} else {
		defer fw.Close()
		fw.OnError = func(err error) { logger.Debug("files watcher", "err", err) }
		fw.OnGone = func(name string) {
			if err := st.drop(name); err != nil {
				select {
				case failed <- err:
				default:
				}
				return
			}
			fw.SetFiles(st.current())
		}
		fw.SetFiles(paths)
		go fw.EventLoop()
	}

	logger.Info("drag source ready", "window", fmt.Sprintf("0x%x", uintptr(win)), "files", len(paths))
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case <-resp.Done():
		logger.Info("drag source closed")
	case err := <-failed:
		return err
	}
	return nil
}

//----------

// Paths offered by the source, shrinking as files disappear.
type payloadState struct {
	mu     sync.Mutex
	paths  dnd.Files
	img    dnd.Image
	win    dnd.WindowHandle
	logger *slog.Logger
	start  func(dnd.WindowHandle, dnd.DragItem, dnd.Image) error
}

func (st *payloadState) apply() error {
	return st.start(st.win, st.paths, st.img)
}

func (st *payloadState) drop(name string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	u := without(st.paths, name)
	if len(u) == len(st.paths) {
		return nil
	}
	st.logger.Info("file gone, removed from payload", "file", name, "left", len(u))
	st.paths = u
	if len(u) == 0 {
		return fmt.Errorf("no files left to drag")
	}
	return st.apply()
}

func (st *payloadState) current() []string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return append([]string(nil), st.paths...)
}
