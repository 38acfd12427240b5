// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package watch reloads a chart data file when it changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teradata-labs/timechart/pkg/series"
)

// DefaultDebounce is the quiet period after the last write before reloading.
const DefaultDebounce = 200 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	Path     string        // Data file to watch
	Debounce time.Duration // Delay after the last change (default: 200ms)
	Logger   *zap.Logger
	// OnReload receives the freshly parsed datasets. It runs on the watcher's
	// goroutine.
	OnReload func([]*series.Dataset)
	// OnError receives load errors for a changed file (optional).
	OnError func(error)
}

// Watcher reloads one data file. The containing directory is watched since
// editors often replace a file instead of writing it in place.
type Watcher struct {
	cfg     Config
	path    string
	watcher *fsnotify.Watcher
	logger  *zap.Logger

	timerMu sync.Mutex
	timer   *time.Timer

	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	stopMu  sync.Mutex
}

// New creates a watcher. Start begins watching.
func New(cfg Config) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, errors.New("watch: no path")
	}
	if cfg.OnReload == nil {
		return nil, errors.New("watch: no reload callback")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	path, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", cfg.Path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		cfg:     cfg,
		path:    path,
		watcher: fw,
		logger:  cfg.Logger,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Start watches until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.stopMu.Lock()
	w.started = true
	w.stopMu.Unlock()
	w.logger.Info("Watching data file",
		zap.String("path", w.path),
		zap.Duration("debounce", w.cfg.Debounce))
	go w.loop(ctx)
	return nil
}

// Stop ends the watch loop and releases the underlying watcher.
func (w *Watcher) Stop() error {
	w.stopMu.Lock()
	defer w.stopMu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopCh)

	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timerMu.Unlock()

	err := w.watcher.Close()
	if w.started {
		<-w.doneCh
	}
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)
	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Data file watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	w.logger.Debug("Data file changed", zap.Stringer("op", event.Op))

	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.cfg.Debounce, w.reload)
}

func (w *Watcher) reload() {
	sets, err := series.LoadFile(w.path)
	if err != nil {
		w.logger.Warn("Failed to reload data file", zap.String("path", w.path), zap.Error(err))
		if w.cfg.OnError != nil {
			w.cfg.OnError(err)
		}
		return
	}
	w.logger.Info("Data file reloaded", zap.String("path", w.path), zap.Int("charts", len(sets)))
	w.cfg.OnReload(sets)
}
