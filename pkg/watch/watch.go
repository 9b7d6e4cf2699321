// Package watch rescans a report directory whenever its files or the rule
// file change. After a rule reload the reports of the previous scan are
// checked against the new rules and the stale ones are reported.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/arthur-debert/bioreport/pkg/core"
	"github.com/arthur-debert/bioreport/pkg/errors"
	"github.com/arthur-debert/bioreport/pkg/logging"
	"github.com/arthur-debert/bioreport/pkg/report"
	"github.com/arthur-debert/bioreport/pkg/scan"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period before a rescan
const DefaultDebounce = 200 * time.Millisecond

// Config controls a watcher
type Config struct {
	// Root is the report directory to watch recursively
	Root string

	// RulesPath is the rule file to watch, empty for embedded rules
	RulesPath string

	// Debounce is the quiet period after the last change before a rescan
	Debounce time.Duration

	// SkipHidden ignores changes to hidden files and directories
	SkipHidden bool
}

// Loader builds a fresh engine, reading the rule file again
type Loader func() (*core.Engine, error)

// Event is delivered after every scan
type Event struct {
	// Result is the scan of the root directory
	Result *scan.Result

	// RulesReloaded is set when the scan follows a rule file change
	RulesReloaded bool

	// Stale are the reports of the previous scan whose module no longer
	// matches the reloaded rules
	Stale []report.Report

	// StaleFailures are the reports of the previous scan that could not be
	// checked against the reloaded rules, e.g. because they became ambiguous
	StaleFailures []scan.Failure

	// Err is set when the rules could not be reloaded or the scan failed
	Err error
}

// Watcher watches a directory and a rule file
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   zerolog.Logger
	config   Config
	load     Loader
	debounce *Debouncer

	mu           sync.Mutex
	engine       *core.Engine
	last         *scan.Result
	rulesChanged bool
	running      bool
}

// New creates a watcher. The loader is called once immediately and again
// after each change of the rule file.
func New(cfg Config, load Loader) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Root == "" {
		return nil, errors.New(errors.ErrInvalidInput, "watch root is required")
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve %s", cfg.Root)
	}
	cfg.Root = root
	if cfg.RulesPath != "" {
		rulesPath, err := filepath.Abs(cfg.RulesPath)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to resolve %s", cfg.RulesPath)
		}
		cfg.RulesPath = rulesPath
	}

	engine, err := load()
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create file watcher")
	}

	return &Watcher{
		watcher:  fsw,
		logger:   logging.GetLogger("watch"),
		config:   cfg,
		load:     load,
		debounce: NewDebouncer(cfg.Debounce),
		engine:   engine,
	}, nil
}

// Watch scans the root once, then rescans after every change until ctx is
// cancelled. onScan is called after each scan, never concurrently.
func (w *Watcher) Watch(ctx context.Context, onScan func(Event)) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New(errors.ErrInternal, "watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.debounce.Stop()
		_ = w.watcher.Close()
	}()

	if err := w.addDirectory(w.config.Root); err != nil {
		return err
	}
	if w.config.RulesPath != "" {
		// Editors replace files on save, so the parent directory is watched
		if err := w.watcher.Add(filepath.Dir(w.config.RulesPath)); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to watch %s", w.config.RulesPath)
		}
	}

	w.logger.Info().
		Str("root", w.config.Root).
		Str("rules", w.config.RulesPath).
		Dur("debounce", w.config.Debounce).
		Msg("Watcher started")

	var cbMu sync.Mutex
	run := func() {
		cbMu.Lock()
		defer cbMu.Unlock()
		onScan(w.rescan(ctx))
	}
	run()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New(errors.ErrInternal, "watcher events channel closed")
			}
			if !w.shouldProcess(event) {
				continue
			}
			w.logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("File event")

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectory(event.Name); err != nil {
						w.logger.Warn().Err(err).Str("path", event.Name).Msg("Failed to watch new directory")
					}
				}
			}
			if w.isRulesFile(event.Name) {
				w.mu.Lock()
				w.rulesChanged = true
				w.mu.Unlock()
			}
			w.debounce.Trigger(run)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New(errors.ErrInternal, "watcher errors channel closed")
			}
			w.logger.Error().Err(err).Msg("File watcher error")
		}
	}
}

// rescan reloads the rules when needed and scans the root
func (w *Watcher) rescan(ctx context.Context) Event {
	w.mu.Lock()
	reload := w.rulesChanged
	w.rulesChanged = false
	engine := w.engine
	last := w.last
	w.mu.Unlock()

	var ev Event
	if reload {
		ev.RulesReloaded = true
		fresh, err := w.load()
		if err != nil {
			w.logger.Error().Err(err).Msg("Rule reload failed, keeping previous rules")
			ev.Err = err
			return ev
		}
		engine = fresh
		if last != nil {
			ev.Stale, ev.StaleFailures = engine.Stale(last.Reports)
		}
		w.logger.Info().
			Int("stale", len(ev.Stale)).
			Int("failed", len(ev.StaleFailures)).
			Msg("Rules reloaded")
	}

	res, err := engine.Scan(ctx, w.config.Root, nil)
	if err != nil {
		ev.Err = err
	}
	ev.Result = res

	w.mu.Lock()
	w.engine = engine
	if res != nil {
		w.last = res
	}
	w.mu.Unlock()
	return ev
}

// addDirectory watches dir and all its subdirectories
func (w *Watcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to walk %s", path)
		}
		if !d.IsDir() {
			return nil
		}
		if w.config.SkipHidden && path != dir && isHidden(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to watch directory %s", path)
		}
		w.logger.Debug().Str("path", path).Msg("Watching directory")
		return nil
	})
}

func (w *Watcher) shouldProcess(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if w.isRulesFile(event.Name) {
		return true
	}
	rel, err := filepath.Rel(w.config.Root, event.Name)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	if w.config.SkipHidden {
		for _, part := range strings.Split(rel, string(filepath.Separator)) {
			if strings.HasPrefix(part, ".") && part != "." {
				return false
			}
		}
	}
	return true
}

func (w *Watcher) isRulesFile(path string) bool {
	return w.config.RulesPath != "" && filepath.Clean(path) == w.config.RulesPath
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
