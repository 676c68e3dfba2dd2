// Package snapshot writes captured frames to PNG files.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// ErrPixelSize is returned when pixel data does not match the frame size.
var ErrPixelSize = errors.New("pixel data size mismatch")

// Writer saves frames as timestamped PNG files.
type Writer struct {
	Dir    string
	Prefix string
	// Now returns the capture time. Defaults to time.Now.
	Now func() time.Time
}

// NewWriter creates a writer that saves into dir.
func NewWriter(dir, prefix string) *Writer {
	return &Writer{Dir: dir, Prefix: prefix, Now: time.Now}
}

// FromGL converts bottom-up RGBA rows, as returned by glReadPixels, into a
// top-down image.
func FromGL(pixels []byte, width, height int) (*image.RGBA, error) {
	if width < 0 || height < 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("%w: %dx%d needs %d bytes, got %d",
			ErrPixelSize, width, height, width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}

// Filename returns the path the next capture would be written to.
func (w *Writer) Filename() string {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	name := fmt.Sprintf("%s_%s.png", w.Prefix, now().Format("2006-01-02_15-04-05.000"))
	if w.Dir != "" {
		name = filepath.Join(w.Dir, name)
	}
	return name
}

// Save encodes img as PNG and returns the file path.
func (w *Writer) Save(img image.Image) (string, error) {
	if w.Dir != "" {
		if err := os.MkdirAll(w.Dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := w.Filename()
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// SaveGL flips and saves a glReadPixels frame.
func (w *Writer) SaveGL(pixels []byte, width, height int) (string, error) {
	img, err := FromGL(pixels, width, height)
	if err != nil {
		return "", err
	}
	return w.Save(img)
}
