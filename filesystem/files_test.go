// SPDX-License-Identifier: GPL-2.0-or-later

package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFilesystemOrder(t *testing.T) {
	base := t.TempDir()
	extra := t.TempDir()
	writeFile(t, base, "models/doc1.obj", "base")
	writeFile(t, base, "doc2.obj", "only base")
	writeFile(t, extra, "models/doc1.obj", "extra")
	UseBaseDir(base)
	AddSearchDir(extra)

	b, err := ReadFile("models/doc1.obj")
	if err != nil {
		t.Fatalf("No file doc1: %v", err)
	}
	if string(b) != "extra" {
		t.Errorf("contents: %q", b)
	}
	b, err = ReadFile("doc2.obj")
	if err != nil {
		t.Fatalf("No file doc2: %v", err)
	}
	if string(b) != "only base" {
		t.Errorf("contents: %q", b)
	}
	if dirs := SearchDirs(); len(dirs) != 2 || dirs[0] != extra {
		t.Errorf("SearchDirs() = %v", dirs)
	}
}

func TestFilesystemAbsolute(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "abs.obj", "v 0 0 0\n")
	UseBaseDir(t.TempDir())
	b, err := ReadFile(filepath.Join(dir, "abs.obj"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "v 0 0 0\n" {
		t.Errorf("contents: %q", b)
	}
}

func TestFilesystemMissing(t *testing.T) {
	UseBaseDir(t.TempDir())
	_, err := ReadFile("nothing/here.obj")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(missing) = %v, want ErrNotExist", err)
	}
	_, err = ReadFile("../escape.obj")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(../escape.obj) = %v, want ErrNotExist", err)
	}
}

func TestFetchHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cube.obj" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("v 1 2 3\n"))
	}))
	defer srv.Close()

	b, err := Fetch(context.Background(), srv.URL+"/cube.obj")
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "v 1 2 3\n" {
		t.Errorf("Fetch() = %q", b)
	}
	if _, err := Fetch(context.Background(), srv.URL+"/missing.obj"); err == nil {
		t.Errorf("Fetch(missing) succeeded")
	}
}

func TestFetchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Fetch(ctx, "whatever.obj"); !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch(canceled) = %v", err)
	}
}

func TestStripExt(t *testing.T) {
	if s := StripExt("models.d/cube"); s != "models.d/cube" {
		t.Errorf("StripExt(models.d/cube) = %q", s)
	}
	if s := StripExt("models/cube.obj"); s != "models/cube" {
		t.Errorf("StripExt(models/cube.obj) = %q", s)
	}
}
