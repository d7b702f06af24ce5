// Package tensor converts float image tensors into standard Go images.
//
// This package accepts rank-3 ([H][W][C]) and rank-4 ([N][H][W][C])
// float32 tensors in the 0..1 range and normalizes them into 8-bit
// NRGBA images. It is designed as an independent module that can be
// imported without pulling in encoding, HTTP delivery or other
// unrelated dependencies.
//
// # Usage
//
// Wrap raw data in a Tensor and normalize it:
//
//	t, err := tensor.New([]int{2, 64, 64, 3}, data)
//	if err != nil {
//	    return err
//	}
//	imgs, err := tensor.Normalize(t)
//	if err != nil {
//	    return err
//	}
//	// imgs holds one *image.NRGBA per batch entry.
//
// # Interfaces
//
// The Array interface decouples normalization from tensor storage.
// Host-resident tensors return themselves; accelerator-backed
// implementations copy device memory into a host Tensor first.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package tensor
