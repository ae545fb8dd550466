// SPDX-License-Identifier: MPL-2.0

// Package watch re-renders a package whenever its sources change.
//
// A Watcher registers every directory below a package root with fsnotify,
// keeps the events whose relative path matches one of its doublestar
// patterns and calls OnChange once per quiet period with the changed paths.
// Callbacks never overlap: events that arrive while one runs are delivered
// to the next call.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/cookdoc/cookdoc/pkg/docmodel"
	"github.com/cookdoc/cookdoc/pkg/metadata"
)

// DefaultDebounce is the quiet period used when Config.Debounce is not
// positive. Editors that write a temp file and rename it produce several
// events within it.
const DefaultDebounce = 300 * time.Millisecond

var (
	// ErrAlreadyStarted is returned by a second call to Run.
	ErrAlreadyStarted = errors.New("watch: Run called more than once")

	// ErrWatcherFailed is wrapped by Run when fsnotify can no longer watch
	// the package, for example once the OS watch limit is exhausted.
	ErrWatcherFailed = errors.New("watch: fatal fsnotify error")
)

var defaultIgnores = []string{
	"**/.git/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Root is the package root. Empty means the working directory.
		Root string

		// Patterns select the files, relative to Root and slash separated,
		// whose changes trigger OnChange. Empty means PackagePatterns of the
		// default layout.
		Patterns []string

		// Ignore lists extra patterns that never trigger OnChange.
		Ignore []string

		Debounce time.Duration

		// OnChange receives the sorted relative paths that changed. Its
		// error is logged and does not stop the watcher.
		OnChange func(ctx context.Context, changed []string) error

		// Logger defaults to the logger stored in the Run context.
		Logger *log.Logger
	}

	// Watcher monitors a package root. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		patterns []string
		ignores  []string
		debounce time.Duration
		root     string
		started  atomic.Bool
	}
)

// PackagePatterns returns the patterns matching every source Build reads
// under layout l: both metadata files and the artifact and fragment files
// of each directory.
func PackagePatterns(l docmodel.Layout) []string {
	artifacts := "*." + l.ArtifactExt
	return []string{
		metadata.CUEFileName,
		metadata.HCLFileName,
		path.Join(filepath.ToSlash(l.AttributesDir), artifacts),
		path.Join(filepath.ToSlash(l.ResourcesDir), artifacts),
		path.Join(filepath.ToSlash(l.DefinitionsDir), artifacts),
		path.Join(filepath.ToSlash(l.RecipesDir), artifacts),
		path.Join(filepath.ToSlash(l.FragmentsDir), "*."+l.FragmentExt),
	}
}

// New resolves the root, validates the patterns and registers the
// directories under root with fsnotify.
func New(cfg Config) (*Watcher, error) {
	root := cfg.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve root: %w", err)
	}

	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = PackagePatterns(docmodel.DefaultLayout())
	}
	if err := validatePatterns(patterns, "watch"); err != nil {
		return nil, err
	}
	if err := validatePatterns(cfg.Ignore, "ignore"); err != nil {
		return nil, err
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		patterns: slices.Clone(patterns),
		ignores:  append(slices.Clone(defaultIgnores), cfg.Ignore...),
		debounce: debounce,
		root:     abs,
	}
	if err := w.addDirectories(); err != nil {
		fsw.Close() //nolint:errcheck // the walk error is more useful
		return nil, err
	}
	return w, nil
}

// Root returns the absolute directory being watched.
func (w *Watcher) Root() string { return w.root }

// Run processes events until ctx is cancelled. It returns nil on
// cancellation and an error when fsnotify fails beyond recovery.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	logger := w.cfg.Logger
	if logger == nil {
		logger = log.FromContext(ctx)
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			// Retry after the current callback instead of dropping events.
			mu.Lock()
			timer.Reset(w.debounce)
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := maps.Keys(pending)
		clear(pending)
		mu.Unlock()
		slices.Sort(changed)

		logger.Debug("package changed", "files", changed)
		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				logger.Error("re-render failed", "err", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			logger.Warn("close fsnotify watcher", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}

			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name, logger)
			}

			rel, err := filepath.Rel(w.root, evt.Name)
			if err != nil || w.isIgnored(rel) || !w.matches(rel) {
				continue
			}

			mu.Lock()
			pending[filepath.ToSlash(rel)] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("%w: %w", ErrWatcherFailed, err)
			}
			logger.Warn("fsnotify error", "err", err)
		}
	}
}

// addDirectories registers root and every non-ignored directory below it.
// Patterns are applied to events, not to registration, so directories
// created for a layout later still report their files.
func (w *Watcher) addDirectories() error {
	err := filepath.WalkDir(w.root, func(p string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == w.root {
				return walkErr
			}
			return nil //nolint:nilerr // unreadable subdirectories are not watched
		}
		if !d.IsDir() {
			return nil
		}
		if rel, _ := filepath.Rel(w.root, p); rel != "." && w.isIgnored(rel+"/") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", p, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: walk %s: %w", w.root, err)
	}
	return nil
}

// maybeAddDir registers directories created after New, such as a
// resources directory added to a package while it is being watched.
func (w *Watcher) maybeAddDir(p string, logger *log.Logger) {
	info, err := os.Stat(p)
	if err != nil || !info.IsDir() {
		return
	}
	rel, err := filepath.Rel(w.root, p)
	if err != nil || w.isIgnored(rel+"/") {
		return
	}
	if err := w.fsw.Add(p); err != nil {
		logger.Warn("watch new directory", "dir", p, "err", err)
	}
}

func (w *Watcher) isIgnored(rel string) bool {
	return matchAny(w.ignores, rel)
}

func (w *Watcher) matches(rel string) bool {
	return matchAny(w.patterns, rel)
}

func matchAny(patterns []string, rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, normalized); err == nil && ok {
			return true
		}
	}
	return false
}

func validatePatterns(patterns []string, label string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("watch: invalid %s pattern %q", label, pat)
		}
	}
	return nil
}
