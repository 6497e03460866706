package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"path"
	"sort"

	"github.com/xy-planning-network/nightshift"
	"github.com/xy-planning-network/nightshift/logger"
	"github.com/xy-planning-network/nightshift/metrics"
	"github.com/xy-planning-network/nightshift/nav"
)

const chunkDir = "js"

// ErrNoChunk means no file in the build holds the named view module.
var ErrNoChunk = fmt.Errorf("%w: chunk", nightshift.ErrNotExist)

// A Library finds view module chunks in a client build.
type Library struct {
	fsys *mergeFS
	l    logger.Logger
}

// New constructs a Library reading from userDir,
// falling back to the build embedded in this package
// for any file userDir does not hold.
//
// A nil userDir uses only the embedded build.
func New(userDir fs.FS, l logger.Logger) *Library {
	return &Library{fsys: newMergeFS(userDir), l: l}
}

// FS exposes the merged build for serving static files.
func (lib *Library) FS() fs.FS { return lib.fsys }

// Chunk reads the view module named name.
//
// Chunk looks for, in order:
//
//	js/<name>.js
//	js/<name>.<hash>.js (webpack)
//	js/<name>-<hash>.js (Vite)
//
// picking the lexically first match of a pattern.
func (lib *Library) Chunk(name string) (*nav.Module, error) {
	p, err := lib.find(name)
	if err != nil {
		return nil, err
	}

	b, err := fs.ReadFile(lib.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("could not read chunk %s: %w", p, err)
	}

	sum := sha256.Sum256(b)
	ct := mime.TypeByExtension(path.Ext(p))
	if ct == "" {
		ct = "application/javascript"
	}

	return &nav.Module{
		Name:        name,
		Chunk:       p,
		ContentType: ct,
		Content:     b,
		Hash:        hex.EncodeToString(sum[:]),
	}, nil
}

// Loader constructs a nav.Loader calling Chunk for name.
// Every call is counted in metrics as a view fetch.
func (lib *Library) Loader(name string) nav.Loader {
	return func(ctx context.Context) (*nav.Module, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m, err := lib.Chunk(name)
		metrics.ViewFetched(name, err)
		if err != nil {
			return nil, err
		}

		if lib.l != nil {
			lib.l.Debug(fmt.Sprintf("fetched view module %s", name), &logger.LogContext{
				View:     name,
				LoadMode: nav.Lazy.String(),
				Data:     map[string]any{"chunk": m.Chunk, "hash": m.Hash},
			})
		}

		return m, nil
	}
}

// find looks for the chunk in the client build before the fallback build,
// so a hashed chunk in the former wins over a plain one in the latter.
func (lib *Library) find(name string) (string, error) {
	if name == "" || path.Base(name) != name {
		return "", fmt.Errorf("%w: bad name %q", ErrNoChunk, name)
	}

	for _, layer := range []fs.FS{lib.fsys.userDir, lib.fsys.pkgDir} {
		p, err := findIn(layer, name)
		if err != nil {
			return "", err
		}

		if p != "" {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNoChunk, name)
}

func findIn(fsys fs.FS, name string) (string, error) {
	plain := path.Join(chunkDir, name+".js")
	_, err := fs.Stat(fsys, plain)
	if err == nil {
		return plain, nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("could not stat chunk %s: %w", plain, err)
	}

	for _, pattern := range []string{
		path.Join(chunkDir, name+".*.js"),
		path.Join(chunkDir, name+"-*.js"),
	} {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return "", fmt.Errorf("%w: bad name %q", ErrNoChunk, name)
		}

		if len(matches) > 0 {
			sort.Strings(matches)
			return matches[0], nil
		}
	}

	return "", nil
}
