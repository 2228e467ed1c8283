// SPDX-License-Identifier: GPL-2.0-or-later

// Package filesystem resolves mesh names to their bytes. Names are either
// http(s) URLs or paths. Paths are tried as given first and then in the
// search directories, the most recently added directory first.
package filesystem

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

var (
	baseDir string
	search  []searchDir
	mutex   sync.RWMutex

	// Client is used for http and https names.
	Client = http.DefaultClient
)

type searchDir struct {
	dir  string
	fsys fs.FS
}

func BaseDir() string {
	mutex.RLock()
	defer mutex.RUnlock()
	return baseDir
}

// UseBaseDir resets the search path to only dir.
func UseBaseDir(dir string) {
	mutex.Lock()
	defer mutex.Unlock()
	baseDir = dir
	search = []searchDir{{dir, os.DirFS(dir)}}
}

// AddSearchDir binds dir before all other search directories.
func AddSearchDir(dir string) {
	mutex.Lock()
	defer mutex.Unlock()
	search = append([]searchDir{{dir, os.DirFS(dir)}}, search...)
}

func SearchDirs() []string {
	mutex.RLock()
	defer mutex.RUnlock()
	r := make([]string, len(search))
	for i, s := range search {
		r[i] = s.dir
	}
	return r
}

func IsURL(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}

// Open returns the first match of name in the search path.
func Open(name string) (io.ReadCloser, error) {
	if f, err := os.Open(name); err == nil {
		return f, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if filepath.IsAbs(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	mutex.RLock()
	defer mutex.RUnlock()
	rel := filepath.ToSlash(filepath.Clean(name))
	for _, s := range search {
		f, err := s.fsys.Open(rel)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrInvalid) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

func ReadFile(name string) ([]byte, error) {
	file, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// Fetch returns the contents of name, downloading URLs.
func Fetch(ctx context.Context, name string) ([]byte, error) {
	if !IsURL(name) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return ReadFile(name)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, name, nil)
	if err != nil {
		return nil, errors.Wrap(err, "filesystem")
	}
	resp, err := Client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", name)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, errors.Errorf("fetching %s: %s", name, resp.Status)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return b, nil
}

func isSep(c uint8) bool {
	return c == '/' || c == '\\'
}

func StripExt(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}
