// Copyright (c) 2026, The Ravel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/ravel-ui/ravel/base/errx"
	"github.com/ravel-ui/ravel/entity"
	"github.com/ravel-ui/ravel/events"
)

// styleWatcher reloads styling when the stylesheet file changes on
// disk: each write turns into a Restyle event sent through the proxy,
// so the reload happens on the UI thread like any other event.
type styleWatcher struct {
	fw   *fsnotify.Watcher
	path string
}

func watchStylesheet(path string, proxy events.Proxy) (*styleWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors typically replace the file, which
	// drops a watch held on the file itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		errx.Log(fw.Close())
		return nil, err
	}
	w := &styleWatcher{fw: fw, path: filepath.Clean(path)}
	go w.run(proxy)
	return w, nil
}

func (w *styleWatcher) run(proxy events.Proxy) {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("stylesheet changed", "path", w.path)
			err := proxy.Send(events.New(events.Restyle{}).SetDirect(entity.Root))
			if errors.Is(err, events.ErrApplicationClosed) {
				return
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			errx.Log(err)
		}
	}
}

func (w *styleWatcher) close() {
	errx.Log(w.fw.Close())
}
