package tensor

import "fmt"

// Tensor is a dense float32 array in row-major order. Image tensors use
// shape [H][W][C] for a single picture or [N][H][W][C] for a batch.
type Tensor struct {
	shape []int
	data  []float32
}

// New creates a Tensor over data with the given shape. The data slice is
// retained, not copied. All dimensions must be non-negative and the
// product of the shape must equal len(data). A leading dimension of zero
// is valid and describes an empty batch.
func New(shape []int, data []float32) (*Tensor, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("tensor: empty shape")
	}
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("tensor: negative dimension %d in shape %v", d, shape)
		}
		n *= d
	}
	if n != len(data) {
		return nil, fmt.Errorf("tensor: shape %v wants %d values, data has %d", shape, n, len(data))
	}
	s := make([]int, len(shape))
	copy(s, shape)
	return &Tensor{shape: s, data: data}, nil
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int { return len(t.shape) }

// Shape returns a copy of the tensor's dimensions.
func (t *Tensor) Shape() []int {
	s := make([]int, len(t.shape))
	copy(s, t.shape)
	return s
}

// Len returns the total number of values.
func (t *Tensor) Len() int { return len(t.data) }

// At returns the value at the given indices. It panics if the number of
// indices does not match the rank or an index is out of range, the same
// way a Go slice index would.
func (t *Tensor) At(idx ...int) float32 {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("tensor: %d indices for rank %d", len(idx), len(t.shape)))
	}
	off := 0
	for i, j := range idx {
		if j < 0 || j >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for dimension %d (size %d)", j, i, t.shape[i]))
		}
		off = off*t.shape[i] + j
	}
	return t.data[off]
}

// HostTensor implements Array. A Tensor is already host-resident, so it
// returns itself.
func (t *Tensor) HostTensor() (*Tensor, error) { return t, nil }

// Array is an image tensor whose storage may live off-host. Normalize
// calls HostTensor once per invocation to materialize the values;
// accelerator-backed implementations copy device memory here.
type Array interface {
	HostTensor() (*Tensor, error)
}
