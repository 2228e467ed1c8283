// SPDX-License-Identifier: GPL-2.0-or-later

// Package config reads and writes the archived cvars as a TOML file:
//
//	[cvars]
//	vid_width = 1024
//	r_autorotate = false
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"meshview/conlog"
	"meshview/cvar"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

type file struct {
	Cvars map[string]any `toml:"cvars"`
}

func valueString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "1"
		}
		return "0"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// Read applies the cvars found in r. Unknown names are reported and
// skipped.
func Read(r io.Reader) error {
	var f file
	if err := toml.NewDecoder(r).Decode(&f); err != nil {
		return errors.Wrap(err, "config")
	}
	for name, v := range f.Cvars {
		if err := cvar.Set(name, valueString(v)); err != nil {
			conlog.Printf("config: %v\n", err)
		}
	}
	return nil
}

// Load reads the config file at path. A missing file is not an error.
func Load(path string) error {
	in, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "config")
	}
	defer in.Close()
	return errors.Wrap(Read(in), path)
}

// Write stores all archived cvars.
func Write(w io.Writer) error {
	f := struct {
		Cvars map[string]string `toml:"cvars"`
	}{
		Cvars: make(map[string]string),
	}
	for _, cv := range cvar.All() {
		if cv.Archive() {
			f.Cvars[cv.Name()] = cv.String()
		}
	}
	return toml.NewEncoder(w).Encode(f)
}

func Save(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	if err := Write(out); err != nil {
		out.Close()
		return errors.Wrap(err, path)
	}
	return out.Close()
}
