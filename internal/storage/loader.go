package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

const DefaultMaxConcurrentReads = 8

// LoadState is the progress of a single requested file.
type LoadState int

const (
	LoadPending LoadState = iota
	LoadLoaded
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadPending:
		return "pending"
	case LoadLoaded:
		return "loaded"
	case LoadFailed:
		return "failed"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

// Terminal reports whether the file is done loading, successfully or not.
func (s LoadState) Terminal() bool {
	return s == LoadLoaded || s == LoadFailed
}

// Handle refers to one file requested from a FolderLoader.
type Handle int

type loadEntry[T ValidatingSpec] struct {
	path  string
	state LoadState
	asset *Asset[T]
	err   error
}

// FolderLoader reads every data file below a folder in the background. Callers
// poll the state of the returned handles instead of waiting on them.
type FolderLoader[T ValidatingSpec] struct {
	maxReads int
	entries  []*loadEntry[T]

	mu sync.RWMutex
}

func NewFolderLoader[T ValidatingSpec](maxConcurrentReads int) *FolderLoader[T] {
	if maxConcurrentReads <= 0 {
		maxConcurrentReads = DefaultMaxConcurrentReads
	}
	return &FolderLoader[T]{maxReads: maxConcurrentReads}
}

// RequestFolder finds every data file below root and starts loading them. It
// returns once the files are known; the loads themselves finish later.
func (l *FolderLoader[T]) RequestFolder(ctx context.Context, root string) ([]Handle, error) {
	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.IsDir() && isAssetFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	l.mu.Lock()
	handles := make([]Handle, len(paths))
	for i, path := range paths {
		handles[i] = Handle(len(l.entries))
		l.entries = append(l.entries, &loadEntry[T]{path: path})
	}
	l.mu.Unlock()

	go l.loadAll(ctx, handles)

	return handles, nil
}

func (l *FolderLoader[T]) loadAll(ctx context.Context, handles []Handle) {
	g := &errgroup.Group{}
	g.SetLimit(l.maxReads)

	for _, h := range handles {
		g.Go(func() error {
			path := l.Path(h)

			var asset *Asset[T]
			err := ctx.Err()
			if err == nil {
				asset, err = l.loadAsset(path)
			}

			l.mu.Lock()
			defer l.mu.Unlock()
			e := l.entries[h]
			if err != nil {
				e.state = LoadFailed
				e.err = err
				return nil
			}
			e.state = LoadLoaded
			e.asset = asset
			return nil
		})
	}

	_ = g.Wait()
}

func (l *FolderLoader[T]) loadAsset(path string) (*Asset[T], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	// Ignoring close error - file is read-only, error is not actionable
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	asset, err := decodeAsset[T](path, data)
	if err != nil {
		return nil, err
	}

	if err := asset.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", filepath.Base(path), err)
	}

	return asset, nil
}

func (l *FolderLoader[T]) entry(h Handle) *loadEntry[T] {
	if h < 0 || int(h) >= len(l.entries) {
		return nil
	}
	return l.entries[h]
}

// State returns the load state of h. Unknown handles report LoadFailed.
func (l *FolderLoader[T]) State(h Handle) LoadState {
	l.mu.RLock()
	defer l.mu.RUnlock()

	e := l.entry(h)
	if e == nil {
		return LoadFailed
	}
	return e.state
}

// GroupState is LoadPending while any handle is pending, then LoadFailed if
// any handle failed, else LoadLoaded.
func (l *FolderLoader[T]) GroupState(hs []Handle) LoadState {
	l.mu.RLock()
	defer l.mu.RUnlock()

	group := LoadLoaded
	for _, h := range hs {
		e := l.entry(h)
		switch {
		case e == nil:
			group = LoadFailed
		case e.state == LoadPending:
			return LoadPending
		case e.state == LoadFailed:
			group = LoadFailed
		}
	}
	return group
}

// Asset returns the decoded file behind h, or the reason it failed.
func (l *FolderLoader[T]) Asset(h Handle) (*Asset[T], error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	e := l.entry(h)
	switch {
	case e == nil:
		return nil, fmt.Errorf("unknown handle %d", h)
	case e.state == LoadPending:
		return nil, fmt.Errorf("%s is still loading", e.path)
	case e.state == LoadFailed:
		return nil, e.err
	}
	return e.asset, nil
}

func (l *FolderLoader[T]) Path(h Handle) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	e := l.entry(h)
	if e == nil {
		return ""
	}
	return e.path
}
