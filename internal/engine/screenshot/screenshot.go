// Package screenshot writes framebuffer captures to PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/castle/internal/engine/texture"
)

// Capture names and writes screenshots into a directory.
type Capture struct {
	dir    string
	prefix string
	now    func() time.Time
	last   string
	seq    int
}

// New creates a capture writing prefix_<timestamp>.png files under dir.
func New(dir, prefix string) *Capture {
	return &Capture{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the next file path. Captures within the same second get
// a numeric suffix so they do not overwrite each other.
func (c *Capture) Filename() string {
	stamp := c.now().Format("20060102_150405")
	if stamp == c.last {
		c.seq++
		stamp = fmt.Sprintf("%s_%d", stamp, c.seq)
	} else {
		c.last = stamp
		c.seq = 0
	}
	name := fmt.Sprintf("%s_%s.png", c.prefix, stamp)
	return filepath.Join(c.dir, name)
}

// FromPixels saves bottom-up RGBA rows as read back from OpenGL.
func (c *Capture) FromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := &image.RGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	texture.FlipVertical(img)
	return c.FromImage(img)
}

// FromImage saves img as PNG.
func (c *Capture) FromImage(img image.Image) (string, error) {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := c.Filename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := encode(file, img); err != nil {
		return "", fmt.Errorf("writing %s: %w", filename, err)
	}
	return filename, nil
}

// encode writes img as PNG and closes w, reporting a failed close.
func encode(w io.WriteCloser, img image.Image) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}
