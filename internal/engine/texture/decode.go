package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/Faultbox/castle/internal/logger"
)

// Extensions lists the file types Find tries, in order.
var Extensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tga", ".webp"}

// Magenta fills the placeholder texture.
var Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// Decode decodes image data. TGA has no magic number, so it is selected
// by the file name's extension; every other format is sniffed.
func Decode(name string, data []byte) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

// ToRGBA converts img to RGBA with its bounds rebased to the origin.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// FlipVertical swaps rows in place so row 0 is the bottom of the image,
// which is where OpenGL expects texture coordinate v=0.
func FlipVertical(img *image.RGBA) {
	h := img.Rect.Dy()
	row := make([]byte, img.Rect.Dx()*4)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : y*img.Stride+len(row)]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-1-y)*img.Stride+len(row)]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

// Fit downscales img so neither side exceeds limit, keeping the aspect ratio.
// Images already within bounds, or limit <= 0, are returned unchanged.
func Fit(img *image.RGBA, limit int) *image.RGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if limit <= 0 || (w <= limit && h <= limit) {
		return img
	}
	nw, nh := limit, limit
	if w > h {
		nh = h * limit / w
	} else {
		nw = w * limit / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Placeholder returns a 2x2 magenta image used when a texture cannot be loaded.
func Placeholder() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	draw.Draw(img, img.Bounds(), image.NewUniform(Magenta), image.Point{}, draw.Src)
	return img
}

// Loader reads named textures from a directory.
type Loader struct {
	Dir     string
	MaxSize int // 0 disables downscaling
}

// Find returns the path of the first file named name plus one of Extensions.
// A name that already carries an extension is used as is.
func (l Loader) Find(name string) (string, error) {
	if filepath.Ext(name) != "" {
		p := filepath.Join(l.Dir, name)
		if _, err := os.Stat(p); err != nil {
			return "", err
		}
		return p, nil
	}
	for _, ext := range Extensions {
		p := filepath.Join(l.Dir, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("texture %q not found in %s", name, l.Dir)
}

// Load reads, decodes and flips a texture ready for upload.
func (l Loader) Load(name string) (*image.RGBA, error) {
	path, err := l.Find(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texture: %w", err)
	}
	img, err := Decode(path, data)
	if err != nil {
		return nil, err
	}
	rgba := Fit(ToRGBA(img), l.MaxSize)
	FlipVertical(rgba)
	return rgba, nil
}

// LoadOrPlaceholder is Load with decode failures logged and replaced by
// the magenta placeholder.
func (l Loader) LoadOrPlaceholder(name string) *image.RGBA {
	img, err := l.Load(name)
	if err != nil {
		logger.Warn("texture load failed, using placeholder",
			zap.String("name", name),
			zap.String("dir", l.Dir),
			zap.Error(err))
		return Placeholder()
	}
	logger.Debug("texture loaded",
		zap.String("name", name),
		zap.Int("width", img.Rect.Dx()),
		zap.Int("height", img.Rect.Dy()))
	return img
}
