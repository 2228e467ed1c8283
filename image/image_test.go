// SPDX-License-Identifier: GPL-2.0-or-later

package image

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestEncodeFlips(t *testing.T) {
	// 1x2, bottom row red, top row blue
	data := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	var buf bytes.Buffer
	if err := Encode(&buf, data, 1, 2); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	top := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
	bottom := color.NRGBAModel.Convert(img.At(0, 1)).(color.NRGBA)
	if top != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("top = %v want blue", top)
	}
	if bottom != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("bottom = %v want red", bottom)
	}
}

func TestEncodeShortData(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, make([]byte, 7), 1, 2); err == nil {
		t.Errorf("Encode with 7 bytes for 1x2 succeeded")
	}
	if err := Encode(&buf, nil, 0, 0); err == nil {
		t.Errorf("Encode of 0x0 succeeded")
	}
}

func TestNextName(t *testing.T) {
	dir := t.TempDir()
	name, err := NextName(dir, "shot")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "shot0000.png"); name != want {
		t.Errorf("NextName = %q want %q", name, want)
	}
	if err := Write(name, make([]byte, 4), 1, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(name); err != nil {
		t.Errorf("Write did not create %s: %v", name, err)
	}
	name, err = NextName(dir, "shot")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "shot0001.png"); name != want {
		t.Errorf("NextName = %q want %q", name, want)
	}
}
