// Package artifact loads the exported model and encoder set from disk, once.
package artifact

import (
	"context"
	"sync"
	"time"

	"scored/internal/common/fsutil"
	"scored/internal/encoding"
	"scored/internal/model"
)

// Artifacts bundles the loaded model and encoders. Both are read-only.
type Artifacts struct {
	Model    model.Regressor
	Encoders *encoding.Set
	// LoadedAt is when the artifacts finished loading.
	LoadedAt time.Time
}

// encoderSpec is one field's entry in the encoder artifact.
type encoderSpec struct {
	Classes []string `json:"classes" yaml:"classes" toml:"classes"`
}

// Loader reads the artifacts on the first call to Load and returns the same
// handles (or the same error) on every later call.
type Loader struct {
	modelPath    string
	encodersPath string

	once sync.Once
	mu   sync.RWMutex
	done bool
	art  *Artifacts
	err  error
	// reads counts storage reads; it never exceeds 1.
	reads int

	// OnLoad, if set, is called once with the load outcome and duration.
	OnLoad func(art *Artifacts, err error, dur time.Duration)
}

// NewLoader returns a Loader for the given artifact paths. The paths are
// stored as given; a leading '~' is expanded when Load first reads them.
func NewLoader(modelPath, encodersPath string) *Loader {
	return &Loader{modelPath: modelPath, encodersPath: encodersPath}
}

// Paths returns the configured model and encoder paths.
func (l *Loader) Paths() (string, string) { return l.modelPath, l.encodersPath }

// Load returns the process-wide artifacts, reading them from storage only on
// the first call. Concurrent first callers block until that single read
// completes and all observe the same result. A caller whose ctx is already
// done gets ctx.Err() and does not trigger or consume the load.
func (l *Loader) Load(ctx context.Context) (*Artifacts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.once.Do(func() {
		start := time.Now()
		art, err := l.read()
		l.mu.Lock()
		l.reads++
		l.art, l.err, l.done = art, err, true
		l.mu.Unlock()
		if l.OnLoad != nil {
			l.OnLoad(art, err, time.Since(start))
		}
	})
	return l.art, l.err
}

// Peek returns the load outcome without triggering a load. done is false
// until the first Load call has finished.
func (l *Loader) Peek() (art *Artifacts, done bool, err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.art, l.done, l.err
}

// Reads returns how many times the artifacts were read from storage.
func (l *Loader) Reads() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reads
}

func (l *Loader) read() (*Artifacts, error) {
	mp, err := resolve(l.modelPath)
	if err != nil {
		return nil, &LoadError{Kind: "model", Path: l.modelPath, Err: err}
	}
	var spec model.Spec
	if err := decodeFile(mp, &spec); err != nil {
		return nil, &LoadError{Kind: "model", Path: mp, Err: err}
	}
	m, err := model.New(spec)
	if err != nil {
		return nil, &LoadError{Kind: "model", Path: mp, Err: err}
	}

	ep, err := resolve(l.encodersPath)
	if err != nil {
		return nil, &LoadError{Kind: "encoders", Path: l.encodersPath, Err: err}
	}
	var specs map[string]encoderSpec
	if err := decodeFile(ep, &specs); err != nil {
		return nil, &LoadError{Kind: "encoders", Path: ep, Err: err}
	}
	classes := make(map[string][]string, len(specs))
	for field, s := range specs {
		classes[field] = s.Classes
	}
	set, err := encoding.NewSet(classes)
	if err != nil {
		return nil, &LoadError{Kind: "encoders", Path: ep, Err: err}
	}
	return &Artifacts{Model: m, Encoders: set, LoadedAt: time.Now()}, nil
}

func resolve(p string) (string, error) {
	abs, err := fsutil.ResolvePath(p)
	if err != nil {
		return "", err
	}
	if err := fsutil.RegularFile(abs); err != nil {
		return "", err
	}
	return abs, nil
}
