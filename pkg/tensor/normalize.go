package tensor

import (
	"fmt"
	"image"

	"github.com/imgship/imgship/pkg/testcard"
)

// Normalize materializes src on the host and converts it to 8-bit
// images. Samples are expected in the 0..1 range; each value is scaled
// by 255, clipped to 0..255 and truncated. Three-channel tensors become
// opaque images, four-channel tensors keep their alpha.
//
// A nil src, or a src that resolves to a nil tensor, yields a single
// test card so that callers always have something to deliver. A rank-4
// tensor yields one image per leading-dimension entry, in order; an
// empty batch yields an empty slice. Any other shape returns a
// *ShapeError.
func Normalize(src Array) ([]*image.NRGBA, error) {
	if src == nil {
		return []*image.NRGBA{testcard.ColorBars()}, nil
	}

	t, err := src.HostTensor()
	if err != nil {
		return nil, fmt.Errorf("tensor: materialize host tensor: %w", err)
	}
	if t == nil {
		return []*image.NRGBA{testcard.ColorBars()}, nil
	}

	switch t.Rank() {
	case 3:
		h, w, c := t.shape[0], t.shape[1], t.shape[2]
		if c != 3 && c != 4 {
			return nil, &ShapeError{Shape: t.Shape(), Rank: 3, Channels: c}
		}
		return []*image.NRGBA{frameImage(h, w, c, t.data)}, nil

	case 4:
		n, h, w, c := t.shape[0], t.shape[1], t.shape[2], t.shape[3]
		if c != 3 && c != 4 {
			return nil, &ShapeError{Shape: t.Shape(), Rank: 4, Channels: c}
		}
		imgs := make([]*image.NRGBA, 0, n)
		stride := h * w * c
		for i := 0; i < n; i++ {
			imgs = append(imgs, frameImage(h, w, c, t.data[i*stride:(i+1)*stride]))
		}
		return imgs, nil

	default:
		return nil, &ShapeError{Shape: t.Shape(), Rank: t.Rank()}
	}
}

// frameImage converts one [H][W][C] frame. The caller has already
// validated that c is 3 or 4.
func frameImage(h, w, c int, data []float32) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	i := 0
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			px := row[x*4 : x*4+4 : x*4+4]
			px[0] = clamp8(data[i])
			px[1] = clamp8(data[i+1])
			px[2] = clamp8(data[i+2])
			if c == 4 {
				px[3] = clamp8(data[i+3])
			} else {
				px[3] = 0xFF
			}
			i += c
		}
	}
	return img
}

// clamp8 maps a 0..1 sample to 0..255, clipping out-of-range values and
// truncating the fraction. NaN maps to 0.
func clamp8(v float32) uint8 {
	s := v * 255
	if !(s > 0) {
		return 0
	}
	if s >= 255 {
		return 255
	}
	return uint8(s)
}
