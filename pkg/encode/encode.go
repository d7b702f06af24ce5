// Package encode turns in-memory images into Discord-ready PNG
// attachments, staged through an on-disk spool directory and guarded
// against the upload size limit.
package encode

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/imgship/imgship/pkg/webhook"
)

// DefaultMaxBytes is the attachment size ceiling. Discord rejects
// uploads above 20 MiB on standard servers.
const DefaultMaxBytes = 20 * 1024 * 1024

// Encoder writes images as PNG files named image_<index>.png. The
// first pass favors speed; an encoding that lands over MaxBytes is
// retried exactly once at half the dimensions with maximum
// compression, and that second result is accepted whatever its size.
type Encoder struct {
	// MaxBytes is the attachment size ceiling in bytes.
	// Zero means DefaultMaxBytes.
	MaxBytes int64
}

// Encode stages img into dir and returns the finished attachment.
// The file is left in dir; the caller owns the directory's lifetime.
func (e Encoder) Encode(img image.Image, index int, dir string) (webhook.File, error) {
	name := fmt.Sprintf("image_%d.png", index)
	path := filepath.Join(dir, name)

	// Fast first pass; most frames fit comfortably under the limit.
	if err := imaging.Save(img, path, imaging.PNGCompressionLevel(png.BestSpeed)); err != nil {
		return webhook.File{}, fmt.Errorf("encode %s: %w", name, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return webhook.File{}, fmt.Errorf("stat %s: %w", name, err)
	}

	if info.Size() > e.maxBytes() {
		// Single retry: half the dimensions, best compression. The
		// channel gets a degraded image rather than nothing, so the
		// result is not measured again.
		b := img.Bounds()
		half := imaging.Resize(img, b.Dx()/2, b.Dy()/2, imaging.Lanczos)
		if err := imaging.Save(half, path, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
			return webhook.File{}, fmt.Errorf("re-encode %s: %w", name, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return webhook.File{}, fmt.Errorf("read %s: %w", name, err)
	}
	return webhook.File{Name: name, Data: data}, nil
}

func (e Encoder) maxBytes() int64 {
	if e.MaxBytes > 0 {
		return e.MaxBytes
	}
	return DefaultMaxBytes
}
