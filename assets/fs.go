package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

//go:embed dist
var pkgFS embed.FS

// mergeFS implements fs.FS
type mergeFS struct {
	// A cache for minimizing ascertaining which directory holds the file.
	cache map[string]func(string) (fs.File, error)

	// Client build directory, e.g., client/dist
	userDir fs.FS

	// Package-level fallback build
	pkgDir fs.FS

	mu sync.RWMutex
}

func newMergeFS(userDir fs.FS) *mergeFS {
	pkgDir, err := fs.Sub(pkgFS, "dist")
	if err != nil {
		// NOTE: dist is embedded at compile time, so this cannot happen
		panic(err)
	}

	if userDir == nil {
		userDir = pkgDir
	}

	return &mergeFS{
		cache:   make(map[string]func(string) (fs.File, error)),
		userDir: userDir,
		pkgDir:  pkgDir,
	}
}

// Open opens the file matching the name using the following strategy:
// - check the cache
// - check the client build directory
// - check the package-level fallback build
//
// Whenever a file is found and is not present in the cache, it is added.
// Nothing removes references from the cache.
//
// If a file is removed from the client build directory during runtime,
// then a reference to it from the cache returns the same error (fs.ErrNotExist)
// as if the cache did not have that reference.
func (mfs *mergeFS) Open(name string) (fs.File, error) {
	mfs.mu.RLock()
	fn, ok := mfs.cache[name]
	mfs.mu.RUnlock()
	if ok {
		return fn(name)
	}

	file, err := mfs.userDir.Open(name)
	if err == nil {
		mfs.remember(name, mfs.userDir.Open)
		return file, nil
	}

	var pe *fs.PathError
	if errors.As(err, &pe) && (errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid)) {
		file, err = mfs.pkgDir.Open(name)
		if err != nil {
			return nil, err
		}

		mfs.remember(name, mfs.pkgDir.Open)
		return file, nil
	}

	return nil, fmt.Errorf("unable to open asset: %w", err)
}

func (mfs *mergeFS) remember(name string, fn func(string) (fs.File, error)) {
	mfs.mu.Lock()
	mfs.cache[name] = fn
	mfs.mu.Unlock()
}
