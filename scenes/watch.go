package scenes

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long a burst of file events must stay quiet before the
// batch is reported. Editors often write a file several times per save.
const settle = 100 * time.Millisecond

// ChangeKind says which part of a running scene a file change affects.
type ChangeKind int

const (
	// ChangeScene is a scene description (.yaml, .yml).
	ChangeScene ChangeKind = iota
	// ChangeLevel is a tile level (.json).
	ChangeLevel
	// ChangeScript is a body controller script (.tengo).
	ChangeScript
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeScene:
		return "scene"
	case ChangeLevel:
		return "level"
	case ChangeScript:
		return "script"
	}
	return "unknown"
}

// Change is one settled file change.
type Change struct {
	Path string
	Kind ChangeKind
}

// ClassifyChange reports what a change to path affects. The second result is
// false for files no scene reads.
func ClassifyChange(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ChangeScene, true
	case ".json":
		return ChangeLevel, true
	case ".tengo":
		return ChangeScript, true
	}
	return 0, false
}

// Watcher batches file events from scene, level and script directories and
// reports each changed path once the batch settles.
type Watcher struct {
	fs      *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher starts watching dirs. Close stops it and closes both channels.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fs,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	pending := make(map[string]ChangeKind)
	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			kind, ok := ClassifyChange(event.Name)
			if !ok {
				continue
			}
			pending[event.Name] = kind
			timer.Reset(settle)
		case <-timer.C:
			if !w.flush(pending) {
				return
			}
			clear(pending)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			timer.Stop()
			return
		}
	}
}

// flush sends pending changes in path order. It returns false if the watcher
// was closed while sending.
func (w *Watcher) flush(pending map[string]ChangeKind) bool {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		select {
		case w.Events <- Change{Path: p, Kind: pending[p]}:
		case <-w.closeCh:
			return false
		}
	}
	return true
}
