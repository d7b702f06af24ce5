// Package testcard generates the placeholder image posted when an
// invocation carries no real picture. The card is a fixed grid of
// vertical color bars, similar to a broadcast test pattern, so a
// misconfigured pipeline is immediately visible in the channel.
package testcard

import (
	"image"
	"image/color"
)

// Size is the width and height of the card in pixels.
const Size = 128

// bars lists the stripe colors left to right. The values follow the
// CSS3 named colors; note that "green" is #008000, not full brightness.
var bars = []color.NRGBA{
	{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, // white
	{R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF}, // yellow
	{R: 0x00, G: 0xFF, B: 0xFF, A: 0xFF}, // cyan
	{R: 0x00, G: 0x80, B: 0x00, A: 0xFF}, // green
	{R: 0xFF, G: 0x00, B: 0xFF, A: 0xFF}, // magenta
	{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}, // red
	{R: 0x00, G: 0x00, B: 0xFF, A: 0xFF}, // blue
	{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}, // black
}

// BarWidth is the width of each stripe in pixels.
const BarWidth = Size / 8

// ColorBars returns a new Size x Size test card. Every call allocates a
// fresh image; the output is deterministic.
func ColorBars() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, Size, Size))
	for x := 0; x < Size; x++ {
		c := bars[x/BarWidth]
		for y := 0; y < Size; y++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
