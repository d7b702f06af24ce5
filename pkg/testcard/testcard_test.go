package testcard

import (
	"bytes"
	"image/color"
	"testing"
)

func TestColorBars_Dimensions(t *testing.T) {
	img := ColorBars()

	b := img.Bounds()
	if b.Dx() != Size || b.Dy() != Size {
		t.Errorf("Bounds = %dx%d, want %dx%d", b.Dx(), b.Dy(), Size, Size)
	}
	if b.Min.X != 0 || b.Min.Y != 0 {
		t.Errorf("Bounds.Min = %v, want (0,0)", b.Min)
	}
}

func TestColorBars_StripeColors(t *testing.T) {
	img := ColorBars()

	// Sample the center of each stripe at several heights.
	want := []color.NRGBA{
		{0xFF, 0xFF, 0xFF, 0xFF}, // white
		{0xFF, 0xFF, 0x00, 0xFF}, // yellow
		{0x00, 0xFF, 0xFF, 0xFF}, // cyan
		{0x00, 0x80, 0x00, 0xFF}, // green
		{0xFF, 0x00, 0xFF, 0xFF}, // magenta
		{0xFF, 0x00, 0x00, 0xFF}, // red
		{0x00, 0x00, 0xFF, 0xFF}, // blue
		{0x00, 0x00, 0x00, 0xFF}, // black
	}

	for i, c := range want {
		x := i*BarWidth + BarWidth/2
		for _, y := range []int{0, Size / 2, Size - 1} {
			got := img.NRGBAAt(x, y)
			if got != c {
				t.Errorf("pixel (%d,%d) = %v, want %v (stripe %d)", x, y, got, c, i)
			}
		}
	}
}

func TestColorBars_StripeBoundaries(t *testing.T) {
	img := ColorBars()

	// Each stripe must be exactly BarWidth wide: the last column of one
	// stripe and the first column of the next differ.
	for i := 1; i < len(bars); i++ {
		edge := i * BarWidth
		left := img.NRGBAAt(edge-1, Size/2)
		right := img.NRGBAAt(edge, Size/2)
		if left == right {
			t.Errorf("stripes %d and %d share color %v at x=%d", i-1, i, left, edge)
		}
		if left != bars[i-1] {
			t.Errorf("stripe %d right edge = %v, want %v", i-1, left, bars[i-1])
		}
		if right != bars[i] {
			t.Errorf("stripe %d left edge = %v, want %v", i, right, bars[i])
		}
	}
}

func TestColorBars_Deterministic(t *testing.T) {
	a := ColorBars()
	b := ColorBars()

	if a == b {
		t.Fatal("ColorBars returned the same image twice; want fresh allocations")
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("two cards differ; want byte-identical output")
	}

	// Mutating one card must not leak into the next.
	a.SetNRGBA(0, 0, color.NRGBA{0x12, 0x34, 0x56, 0xFF})
	c := ColorBars()
	if !bytes.Equal(b.Pix, c.Pix) {
		t.Error("card generated after mutation differs from pristine card")
	}
}
