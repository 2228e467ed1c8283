// SPDX-License-Identifier: GPL-2.0-or-later

// Package image writes screenshots of the frame buffer.
package image

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const maxShots = 10000

// Encode writes RGBA 8bit data as png. The rows of data are bottom up as
// returned by glReadPixels.
func Encode(w io.Writer, data []byte, width, height int) error {
	if width <= 0 || height <= 0 || len(data) < width*height*4 {
		return errors.Errorf("Tried to write a %dx%d image from %d bytes", width, height, len(data))
	}
	stride := 4 * width
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := data[(height-1-y)*stride : (height-y)*stride]
		copy(img.Pix[y*img.Stride:], src)
	}
	return png.Encode(w, img)
}

// Write stores the image in the file name.
func Write(name string, data []byte, width, height int) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := Encode(f, data, width, height); err != nil {
		f.Close()
		return errors.Wrap(err, name)
	}
	return f.Close()
}

// NextName returns the first prefixNNNN.png in dir that does not exist yet.
func NextName(dir, prefix string) (string, error) {
	for i := 0; i < maxShots; i++ {
		name := filepath.Join(dir, fmt.Sprintf("%s%04d.png", prefix, i))
		if _, err := os.Stat(name); errors.Is(err, os.ErrNotExist) {
			return name, nil
		}
	}
	return "", errors.Errorf("Couldn't find a free screenshot name in %s", dir)
}
